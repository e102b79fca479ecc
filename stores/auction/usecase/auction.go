package usecase

import (
	"context"
	"errors"
	"math/big"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/goroutine"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/domain/escrow"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/locker"
	"github.com/x-xyz/goauction/service/query"
)

type AuctionUseCaseCfg struct {
	Query     query.Mongo
	Repo      auction.Repo
	EventRepo auction.EventRepo
	Escrow    escrow.UseCase
	Registry  erc721.Registry
	Locker    locker.Locker
	// Cache holds records served by Get, optional
	Cache cache.Service
	// Pool runs listeners, they run inline when it is nil
	Pool      *goroutine.Pool
	Listeners []auction.Listener
	Now       func() time.Time
}

type impl struct {
	q         query.Mongo
	repo      auction.Repo
	eventRepo auction.EventRepo
	escrow    escrow.UseCase
	registry  erc721.Registry
	locker    locker.Locker
	cache     cache.Service
	pool      *goroutine.Pool
	listeners []auction.Listener
	now       func() time.Time
	met       metrics.Service
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		q:         cfg.Query,
		repo:      cfg.Repo,
		eventRepo: cfg.EventRepo,
		escrow:    cfg.Escrow,
		registry:  cfg.Registry,
		locker:    cfg.Locker,
		cache:     cfg.Cache,
		pool:      cfg.Pool,
		listeners: cfg.Listeners,
		now:       now,
		met:       metrics.New("auction"),
	}
}

// slotKey names the key in the locker and the cache
func slotKey(key auction.Key) string {
	return keys.RedisKey(string(key.Collection), string(key.TokenId))
}

// load returns the stored record, or the NOT_STARTED record for an unseen key
func (im *impl) load(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	a, err := im.repo.FindOne(c, key)
	if err == domain.ErrNotFound {
		return auction.NotStarted(key), nil
	} else if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return nil, err
	}
	return a, nil
}

type outcome struct {
	auction *auction.Auction
	events  []*auction.Event
}

// mutate runs fn under the key lock inside one transaction. The record fn
// returns and its events are written in that transaction, so a failure
// anywhere leaves neither behind. Listeners see events after commit only.
func (im *impl) mutate(c ctx.Ctx, op string, key auction.Key, fn func(c ctx.Ctx, cur *auction.Auction, now time.Time) (*outcome, error)) (*auction.Auction, error) {
	defer im.met.BumpTime(op + ".time").End()

	unlock, err := im.locker.Lock(c, slotKey(key))
	if err != nil {
		c.WithField("err", err).Warn("locker.Lock failed")
		im.met.BumpSum(op+".err", 1, "code", "lock")
		return nil, err
	}
	defer unlock()

	var res *outcome
	err = im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		cur, err := im.load(c, key)
		if err != nil {
			return err
		}
		out, err := fn(c, cur, im.now())
		if err != nil {
			return err
		}
		out.auction.UpdatedAt = im.now()
		if err := im.repo.Upsert(c, out.auction); err != nil {
			c.WithField("err", err).Error("repo.Upsert failed")
			return err
		}
		for _, e := range out.events {
			if err := im.eventRepo.Insert(c, e); err != nil {
				c.WithFields(log.Fields{"err": err, "type": e.Type}).Error("eventRepo.Insert failed")
				return err
			}
		}
		res = out
		return nil
	})
	if err != nil {
		code := "internal"
		var aerr *auction.Error
		if errors.As(err, &aerr) {
			code = aerr.Code.Error()
		} else {
			c.WithField("err", err).Error("q.RunWithTransaction failed")
		}
		im.met.BumpSum(op+".err", 1, "code", code)
		return nil, err
	}
	im.met.BumpSum(op+".success", 1)

	if im.cache != nil {
		if err := im.cache.Del(c, slotKey(key)); err != nil {
			c.WithField("err", err).Warn("cache.Del failed")
		}
	}
	for _, e := range res.events {
		im.publish(c, e, res.auction)
	}
	return res.auction, nil
}

func (im *impl) publish(c ctx.Ctx, e *auction.Event, a *auction.Auction) {
	for _, l := range im.listeners {
		l := l
		a := a.Clone()
		run := func() {
			logger := c.WithFields(log.Fields{"listener": l.Name(), "type": e.Type})
			if err := l.Handle(ctx.Ctx{Context: context.Background(), Logger: logger}, e, a); err != nil {
				logger.WithField("err", err).Warn("listener failed")
				im.met.BumpSum("listener.err", 1, "listener", l.Name())
			}
		}
		if im.pool == nil {
			run()
			continue
		}
		if err := im.pool.Go(run, goroutine.WithName("listener."+l.Name())); err != nil {
			c.WithFields(log.Fields{"err": err, "listener": l.Name()}).Warn("pool.Go failed, event dropped")
			im.met.BumpSum("listener.dropped", 1, "listener", l.Name())
		}
	}
}

func (im *impl) Create(c ctx.Ctx, caller domain.Address, req auction.CreateRequest) (*auction.Auction, error) {
	key := auction.NewKey(req.Collection, req.TokenId)
	c = ctx.WithLogFields(c, log.Fields{"collection": key.Collection, "tokenId": key.TokenId, "caller": caller})

	if key.Collection.IsEmpty() || !key.Collection.IsValid() {
		return nil, auction.InvalidAddress(key)
	}
	if _, err := key.TokenId.ToBigInt(); err != nil {
		return nil, auction.InvalidAddress(key)
	}
	if req.StartingPrice == nil || req.StartingPrice.Sign() <= 0 {
		price := "0"
		if req.StartingPrice != nil {
			price = req.StartingPrice.String()
		}
		return nil, auction.InvalidStartingPrice(key, price)
	}
	if req.Duration <= 0 {
		return nil, auction.InvalidDuration(key)
	}

	return im.mutate(c, "create", key, func(c ctx.Ctx, cur *auction.Auction, now time.Time) (*outcome, error) {
		owner, err := im.registry.OwnerOf(c, key.Collection, key.TokenId)
		if err == erc721.ErrTokenNotMinted {
			return nil, auction.NotOwner(key, caller, domain.EmptyAddress)
		} else if err != nil {
			c.WithField("err", err).Error("registry.OwnerOf failed")
			return nil, xerrors.Errorf("owner of %s: %w", key, err)
		}
		if !owner.Equals(caller) {
			return nil, auction.NotOwner(key, caller, owner)
		}

		approved, err := im.registry.IsApprovedForAll(c, key.Collection, owner, im.registry.Operator())
		if err != nil {
			c.WithField("err", err).Error("registry.IsApprovedForAll failed")
			return nil, xerrors.Errorf("approval of %s: %w", key, err)
		}
		if !approved {
			return nil, auction.NotApproved(key, owner)
		}

		if cur.Status == auction.StatusInProgress {
			return nil, auction.AuctionAlreadyActive(key)
		}

		a := &auction.Auction{
			Collection:    key.Collection,
			TokenId:       key.TokenId,
			Seller:        caller.ToLower(),
			StartingAt:    now,
			EndingAt:      now.Add(req.Duration),
			StartingPrice: req.StartingPrice.String(),
			HighestBid:    "0",
			HighestBidder: domain.EmptyAddress,
			Bidders:       []auction.Bid{auction.SentinelBid()},
			Status:        auction.StatusInProgress,
		}
		c.WithFields(log.Fields{"startingPrice": a.StartingPrice, "endingAt": a.EndingAt}).Info("auction created")
		return &outcome{a, []*auction.Event{auction.NewAuctionCreated(a)}}, nil
	})
}

func (im *impl) Bid(c ctx.Ctx, caller domain.Address, key auction.Key, value *big.Int) (*auction.Auction, error) {
	key = auction.NewKey(key.Collection, key.TokenId)
	c = ctx.WithLogFields(c, log.Fields{"collection": key.Collection, "tokenId": key.TokenId, "caller": caller})

	return im.mutate(c, "bid", key, func(c ctx.Ctx, cur *auction.Auction, now time.Time) (*outcome, error) {
		if cur.Status != auction.StatusInProgress {
			return nil, auction.AuctionNotInProgress(key)
		}
		if cur.IsOver(now) {
			return nil, auction.AuctionIsOver(key, cur.EndingAt)
		}
		if caller.Equals(cur.Seller) {
			return nil, auction.SellerIsBidder(key, cur.Seller)
		}
		if value == nil || !cur.Accepts(value) {
			amount := "0"
			if value != nil {
				amount = value.String()
			}
			return nil, auction.InsufficientAmount(key, amount)
		}

		a := cur.Clone()
		// the outbid bidder is paid back before the new bid is taken
		if a.HasBid() {
			if err := im.escrow.Release(c, key.Collection, key.TokenId, a.HighestBidder, a.HighestBidValue()); err != nil {
				c.WithFields(log.Fields{"err": err, "to": a.HighestBidder, "amount": a.HighestBid}).Error("refund failed")
				return nil, auction.PayoutFailure(key, a.HighestBidder, a.HighestBid, err)
			}
		}
		if err := im.escrow.Hold(c, key.Collection, key.TokenId, caller, value); err == escrow.ErrInsufficientBalance {
			return nil, auction.InsufficientFunds(key, caller, value.String(), err)
		} else if err != nil {
			c.WithField("err", err).Error("escrow.Hold failed")
			return nil, err
		}

		bid := auction.Bid{Bidder: caller.ToLower(), Value: value.String()}
		a.Bidders = append(a.Bidders, bid)
		a.HighestBid = bid.Value
		a.HighestBidder = bid.Bidder
		c.WithField("value", bid.Value).Info("bid accepted")
		return &outcome{a, []*auction.Event{auction.NewNewBid(key, bid.Bidder, bid.Value, now)}}, nil
	})
}

// End settles the auction. Funds are released to the seller and the token is
// transferred to the winner within the same transaction, the transfer last.
// Any failing leg aborts the call and the auction stays IN_PROGRESS.
func (im *impl) End(c ctx.Ctx, caller domain.Address, key auction.Key) (*auction.Auction, error) {
	key = auction.NewKey(key.Collection, key.TokenId)
	// a settlement whose transfer was sent must get to commit even if the caller goes away
	c = ctx.WithoutCancel(c)
	c = ctx.WithLogFields(c, log.Fields{"collection": key.Collection, "tokenId": key.TokenId, "caller": caller})

	return im.mutate(c, "end", key, func(c ctx.Ctx, cur *auction.Auction, now time.Time) (*outcome, error) {
		if cur.Status != auction.StatusInProgress {
			return nil, auction.AuctionNotInProgress(key)
		}
		if !cur.IsOver(now) {
			return nil, auction.AuctionNotOverYet(key, cur.EndingAt)
		}
		if !caller.Equals(cur.Seller) {
			return nil, auction.CallerIsNotSeller(key, caller, cur.Seller)
		}

		a := cur.Clone()
		a.Status = auction.StatusEnded
		a.Bidders = []auction.Bid{auction.SentinelBid()}

		winner := domain.EmptyAddress
		if a.HasBid() {
			winner = a.HighestBidder
			if err := im.escrow.Release(c, key.Collection, key.TokenId, a.Seller, a.HighestBidValue()); err != nil {
				c.WithFields(log.Fields{"err": err, "amount": a.HighestBid}).Error("settlement payout failed")
				return nil, auction.PayoutFailure(key, a.Seller, a.HighestBid, err)
			}
			if err := im.registry.TransferFrom(c, key.Collection, a.Seller, winner, key.TokenId); err != nil {
				c.WithFields(log.Fields{"err": err, "winner": winner}).Error("registry.TransferFrom failed")
				return nil, auction.PayoutFailure(key, winner, a.HighestBid, err)
			}
		}

		c.WithFields(log.Fields{"winner": winner, "value": a.HighestBid}).Info("auction ended")
		return &outcome{a, []*auction.Event{auction.NewAuctionEnded(key, a.Seller, winner, a.HighestBid, now)}}, nil
	})
}

func (im *impl) Get(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	key = auction.NewKey(key.Collection, key.TokenId)
	if im.cache == nil {
		return im.load(c, key)
	}

	res := &auction.Auction{}
	if err := im.cache.GetByFunc(c, slotKey(key), res, func() (interface{}, error) {
		return im.load(c, key)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Events(c ctx.Ctx, key auction.Key, opts ...auction.EventFindAllOptionsFunc) ([]*auction.Event, error) {
	key = auction.NewKey(key.Collection, key.TokenId)
	res, err := im.eventRepo.FindAll(c, key, opts...)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("eventRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}
