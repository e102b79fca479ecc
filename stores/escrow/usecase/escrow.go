package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/escrow"
	"github.com/x-xyz/goauction/service/query"
)

type EscrowUseCaseCfg struct {
	Query query.Mongo
	Repo  escrow.Repo
	Now   func() time.Time
}

type impl struct {
	q    query.Mongo
	repo escrow.Repo
	now  func() time.Time
	met  metrics.Service
}

func New(cfg *EscrowUseCaseCfg) escrow.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		q:    cfg.Query,
		repo: cfg.Repo,
		now:  now,
		met:  metrics.New("escrow"),
	}
}

func (im *impl) account(c ctx.Ctx, address domain.Address) (*escrow.Account, error) {
	a, err := im.repo.FindAccount(c, address)
	if err == domain.ErrNotFound {
		return &escrow.Account{Address: address.ToLower(), Balance: "0"}, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("repo.FindAccount failed")
		return nil, err
	}
	return a, nil
}

// credit adds delta, which may be negative, to the free balance of address
func (im *impl) credit(c ctx.Ctx, address domain.Address, delta *big.Int) (*escrow.Account, error) {
	a, err := im.account(c, address)
	if err != nil {
		return nil, err
	}
	balance := new(big.Int).Add(domain.MustParseWei(a.Balance), delta)
	if balance.Sign() < 0 {
		return nil, escrow.ErrInsufficientBalance
	}
	a.Balance = balance.String()
	a.UpdatedAt = im.now()
	if err := im.repo.UpsertAccount(c, a); err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("repo.UpsertAccount failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) record(c ctx.Ctx, kind escrow.EntryKind, address, collection domain.Address, tokenId domain.TokenId, amount *big.Int) error {
	e := &escrow.Entry{
		Id:         uuid.NewString(),
		Kind:       kind,
		Address:    address.ToLower(),
		Collection: collection.ToLower(),
		TokenId:    tokenId,
		Amount:     amount.String(),
		CreatedAt:  im.now(),
	}
	if err := im.repo.InsertEntry(c, e); err != nil {
		c.WithFields(log.Fields{"err": err, "kind": kind}).Error("repo.InsertEntry failed")
		return err
	}
	im.met.BumpSum("entry", 1, "kind", string(kind))
	return nil
}

func (im *impl) BalanceOf(c ctx.Ctx, address domain.Address) (*big.Int, error) {
	a, err := im.account(c, address)
	if err != nil {
		return nil, err
	}
	return domain.MustParseWei(a.Balance), nil
}

func (im *impl) HeldFor(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*escrow.Hold, error) {
	h, err := im.repo.FindHold(c, collection, tokenId)
	if err == domain.ErrNotFound {
		return &escrow.Hold{
			Collection: collection.ToLower(),
			TokenId:    tokenId,
			Holder:     domain.EmptyAddress,
			Amount:     "0",
		}, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "collection": collection, "tokenId": tokenId}).Error("repo.FindHold failed")
		return nil, err
	}
	return h, nil
}

func (im *impl) Deposit(c ctx.Ctx, address domain.Address, amount *big.Int) (*escrow.Account, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, escrow.ErrInvalidAmount
	}

	var res *escrow.Account
	err := im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		a, err := im.credit(c, address, amount)
		if err != nil {
			return err
		}
		res = a
		return im.record(c, escrow.EntryDeposit, address, "", "", amount)
	})
	if err != nil {
		return nil, err
	}
	c.WithFields(log.Fields{"address": address, "amount": amount}).Info("escrow deposit")
	return res, nil
}

func (im *impl) Withdraw(c ctx.Ctx, address domain.Address, amount *big.Int) (*escrow.Account, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, escrow.ErrInvalidAmount
	}

	var res *escrow.Account
	err := im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		a, err := im.credit(c, address, new(big.Int).Neg(amount))
		if err != nil {
			return err
		}
		res = a
		return im.record(c, escrow.EntryWithdraw, address, "", "", amount)
	})
	if err != nil {
		return nil, err
	}
	c.WithFields(log.Fields{"address": address, "amount": amount}).Info("escrow withdraw")
	return res, nil
}

func (im *impl) Hold(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, from domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return escrow.ErrInvalidAmount
	}

	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		prev, err := im.HeldFor(c, collection, tokenId)
		if err != nil {
			return err
		}
		if !prev.IsEmpty() {
			return escrow.ErrHoldOccupied
		}
		if _, err := im.credit(c, from, new(big.Int).Neg(amount)); err != nil {
			return err
		}
		h := &escrow.Hold{
			Collection: collection.ToLower(),
			TokenId:    tokenId,
			Holder:     from.ToLower(),
			Amount:     amount.String(),
			UpdatedAt:  im.now(),
		}
		if err := im.repo.UpsertHold(c, h); err != nil {
			c.WithField("err", err).Error("repo.UpsertHold failed")
			return err
		}
		return im.record(c, escrow.EntryHold, from, collection, tokenId, amount)
	})
}

func (im *impl) Release(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return escrow.ErrInvalidAmount
	}

	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		h, err := im.HeldFor(c, collection, tokenId)
		if err != nil {
			return err
		}
		if h.AmountValue().Cmp(amount) != 0 {
			c.WithFields(log.Fields{
				"held":   h.Amount,
				"amount": amount,
			}).Error("release does not match hold")
			return escrow.ErrHoldMismatch
		}
		if err := im.repo.RemoveHold(c, collection, tokenId); err != nil {
			c.WithField("err", err).Error("repo.RemoveHold failed")
			return err
		}
		if _, err := im.credit(c, to, amount); err != nil {
			return err
		}
		return im.record(c, escrow.EntryRelease, to, collection, tokenId, amount)
	})
}

func (im *impl) Entries(c ctx.Ctx, address domain.Address, offset, limit int) ([]*escrow.Entry, error) {
	res, err := im.repo.FindEntries(c, address, offset, limit)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("repo.FindEntries failed")
		return nil, err
	}
	return res, nil
}
