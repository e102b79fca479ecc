package usecase

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/domain/escrow"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	"github.com/x-xyz/goauction/service/locker"
	"github.com/x-xyz/goauction/service/query"
	auctionRepo "github.com/x-xyz/goauction/stores/auction/repository"
	erc721Repo "github.com/x-xyz/goauction/stores/erc721/repository"
	escrowRepo "github.com/x-xyz/goauction/stores/escrow/repository"
	escrowUsecase "github.com/x-xyz/goauction/stores/escrow/usecase"
)

// engineSuite wires the engine to the memory store, the ledger registry and
// the escrow ledger
type engineSuite struct {
	suite.Suite

	clock    time.Time
	mu       sync.Mutex
	registry erc721.LedgerRegistry
	escrow   escrow.UseCase
	im       auction.UseCase
}

func (s *engineSuite) now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

func (s *engineSuite) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(d)
}

func (s *engineSuite) SetupTest() {
	s.clock = now
	q := query.NewMemory()
	s.registry = erc721Repo.NewLedger(q, operator)
	s.escrow = escrowUsecase.New(&escrowUsecase.EscrowUseCaseCfg{
		Query: q,
		Repo:  escrowRepo.NewEscrowRepo(q),
		Now:   s.now,
	})
	s.im = New(&AuctionUseCaseCfg{
		Query:     q,
		Repo:      auctionRepo.NewAuctionRepo(q),
		EventRepo: auctionRepo.NewEventRepo(q),
		Escrow:    s.escrow,
		Registry:  s.registry,
		Locker:    locker.NewMemory(locker.Cfg{Wait: 5 * time.Second}),
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxAuctionCache,
			Cache: primitive.NewPrimitive("auction", 1024*1024),
		}),
		Now: s.now,
	})

	s.Require().NoError(s.registry.Mint(mockCtx, collection, "1", seller))
	s.Require().NoError(s.registry.SetApprovalForAll(mockCtx, collection, seller, operator, true))
	for _, addr := range []domain.Address{bidderA, bidderB} {
		_, err := s.escrow.Deposit(mockCtx, addr, big.NewInt(10))
		s.Require().NoError(err)
	}
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) balance(addr domain.Address) int64 {
	b, err := s.escrow.BalanceOf(mockCtx, addr)
	s.Require().NoError(err)
	return b.Int64()
}

func (s *engineSuite) held() *escrow.Hold {
	h, err := s.escrow.HeldFor(mockCtx, collection, "1")
	s.Require().NoError(err)
	return h
}

func (s *engineSuite) get() *auction.Auction {
	a, err := s.im.Get(mockCtx, key)
	s.Require().NoError(err)
	return a
}

func (s *engineSuite) owner() domain.Address {
	o, err := s.registry.OwnerOf(mockCtx, collection, "1")
	s.Require().NoError(err)
	return o
}

func (s *engineSuite) create(caller domain.Address) *auction.Auction {
	a, err := s.im.Create(mockCtx, caller, auction.CreateRequest{
		Collection:    collection,
		TokenId:       "1",
		StartingPrice: big.NewInt(1),
		Duration:      10 * time.Second,
	})
	s.Require().NoError(err)
	return a
}

func (s *engineSuite) TestScenario() {
	s.Equal(auction.StatusNotStarted, s.get().Status)
	s.create(seller)

	_, err := s.im.Bid(mockCtx, bidderA, key, big.NewInt(2))
	s.Require().NoError(err)
	a := s.get()
	s.Equal("2", a.HighestBid)
	s.Equal(bidderA, a.HighestBidder)
	s.Equal(int64(8), s.balance(bidderA))
	s.Equal("2", s.held().Amount)

	_, err = s.im.Bid(mockCtx, bidderB, key, big.NewInt(1))
	s.True(errors.Is(err, auction.ErrInsufficientAmount))
	unchanged := s.get()
	s.Equal(a.HighestBid, unchanged.HighestBid)
	s.Equal(a.HighestBidder, unchanged.HighestBidder)
	s.Equal(a.Bidders, unchanged.Bidders)
	s.Equal(int64(10), s.balance(bidderB))

	_, err = s.im.Bid(mockCtx, bidderB, key, big.NewInt(3))
	s.Require().NoError(err)
	a = s.get()
	s.Equal("3", a.HighestBid)
	s.Equal(bidderB, a.HighestBidder)
	s.Len(a.Bidders, 3)
	s.Equal(int64(10), s.balance(bidderA))
	s.Equal(int64(7), s.balance(bidderB))
	s.Equal(bidderB, s.held().Holder)
	s.Equal("3", s.held().Amount)

	_, err = s.im.End(mockCtx, seller, key)
	s.True(errors.Is(err, auction.ErrAuctionNotOverYet))

	s.advance(10 * time.Second)
	_, err = s.im.Bid(mockCtx, bidderA, key, big.NewInt(4))
	s.True(errors.Is(err, auction.ErrAuctionIsOver))

	_, err = s.im.End(mockCtx, bidderB, key)
	s.True(errors.Is(err, auction.ErrCallerIsNotSeller))

	_, err = s.im.End(mockCtx, seller, key)
	s.Require().NoError(err)
	a = s.get()
	s.Equal(auction.StatusEnded, a.Status)
	s.Equal([]auction.Bid{auction.SentinelBid()}, a.Bidders)
	s.Equal(bidderB, s.owner())
	s.Equal(int64(3), s.balance(seller))
	s.True(s.held().IsEmpty())

	_, err = s.im.End(mockCtx, seller, key)
	s.True(errors.Is(err, auction.ErrAuctionNotInProgress))

	events, err := s.im.Events(mockCtx, key)
	s.Require().NoError(err)
	types := []auction.EventType{}
	for _, e := range events {
		types = append(types, e.Type)
	}
	s.Equal([]auction.EventType{
		auction.EventAuctionCreated,
		auction.EventNewBid,
		auction.EventNewBid,
		auction.EventAuctionEnded,
	}, types)
	s.Equal(bidderB, events[3].Winner)
}

func (s *engineSuite) TestEndWithoutBids() {
	s.create(seller)
	s.advance(time.Minute)

	_, err := s.im.End(mockCtx, seller, key)
	s.Require().NoError(err)
	s.Equal(auction.StatusEnded, s.get().Status)
	s.Equal(seller, s.owner())
	s.Equal(int64(0), s.balance(seller))
}

func (s *engineSuite) TestRecreateAfterEnded() {
	first := s.create(seller)
	_, err := s.im.Bid(mockCtx, bidderA, key, big.NewInt(5))
	s.Require().NoError(err)
	s.advance(time.Minute)
	_, err = s.im.End(mockCtx, seller, key)
	s.Require().NoError(err)

	// the previous seller no longer owns the token
	_, err = s.im.Create(mockCtx, seller, auction.CreateRequest{
		Collection:    collection,
		TokenId:       "1",
		StartingPrice: big.NewInt(1),
		Duration:      10 * time.Second,
	})
	s.True(errors.Is(err, auction.ErrNotOwner))

	s.Require().NoError(s.registry.SetApprovalForAll(mockCtx, collection, bidderA, operator, true))
	second := s.create(bidderA)
	s.Equal(bidderA, second.Seller)
	s.Equal(auction.StatusInProgress, second.Status)
	s.Equal("0", second.HighestBid)
	s.Equal(domain.EmptyAddress, second.HighestBidder)
	s.Equal([]auction.Bid{auction.SentinelBid()}, second.Bidders)
	s.Equal(second.EndingAt.Sub(second.StartingAt), first.EndingAt.Sub(first.StartingAt))
	s.True(s.held().IsEmpty())
}

func (s *engineSuite) TestTokenIdSpellingsShareOneSlot() {
	s.create(seller)

	for _, id := range []domain.TokenId{"01", "001", "+1"} {
		_, err := s.im.Create(mockCtx, seller, auction.CreateRequest{
			Collection:    collection,
			TokenId:       id,
			StartingPrice: big.NewInt(1),
			Duration:      10 * time.Second,
		})
		s.True(errors.Is(err, auction.ErrAuctionAlreadyActive), id)
	}

	_, err := s.im.Bid(mockCtx, bidderA, auction.NewKey(collection, "001"), big.NewInt(2))
	s.Require().NoError(err)
	s.Equal(bidderA, s.get().HighestBidder)
	s.Equal("2", s.held().Amount)
}

func (s *engineSuite) TestTransferFailureRollsBack() {
	s.create(seller)
	_, err := s.im.Bid(mockCtx, bidderA, key, big.NewInt(4))
	s.Require().NoError(err)
	s.advance(time.Minute)

	s.Require().NoError(s.registry.SetApprovalForAll(mockCtx, collection, seller, operator, false))
	_, err = s.im.End(mockCtx, seller, key)
	s.True(errors.Is(err, auction.ErrPayoutFailure))
	s.True(errors.Is(err, erc721.ErrOperatorDenied))

	a := s.get()
	s.Equal(auction.StatusInProgress, a.Status)
	s.Len(a.Bidders, 2)
	s.Equal("4", s.held().Amount)
	s.Equal(int64(0), s.balance(seller))
	s.Equal(seller, s.owner())

	s.Require().NoError(s.registry.SetApprovalForAll(mockCtx, collection, seller, operator, true))
	_, err = s.im.End(mockCtx, seller, key)
	s.Require().NoError(err)
	s.Equal(bidderA, s.owner())
	s.Equal(int64(4), s.balance(seller))
}

func (s *engineSuite) TestInsufficientFundsLeavesStateUntouched() {
	s.create(seller)
	_, err := s.im.Bid(mockCtx, bidderA, key, big.NewInt(2))
	s.Require().NoError(err)

	// the refund to A is rolled back together with the failed hold
	_, err = s.im.Bid(mockCtx, bidderB, key, big.NewInt(11))
	s.True(errors.Is(err, auction.ErrInsufficientFunds))
	s.Equal(int64(8), s.balance(bidderA))
	s.Equal(int64(10), s.balance(bidderB))
	s.Equal(bidderA, s.held().Holder)
	s.Equal(bidderA, s.get().HighestBidder)
}

func (s *engineSuite) TestConcurrentBids() {
	s.create(seller)

	bidders := []domain.Address{}
	for i := 0; i < 20; i++ {
		addr := domain.Address(fmt.Sprintf("0x%040x", i+1))
		_, err := s.escrow.Deposit(mockCtx, addr, big.NewInt(100))
		s.Require().NoError(err)
		bidders = append(bidders, addr)
	}

	wg := sync.WaitGroup{}
	for i, addr := range bidders {
		wg.Add(1)
		go func(addr domain.Address, value int64) {
			defer wg.Done()
			_, err := s.im.Bid(mockCtx, addr, key, big.NewInt(value))
			if err != nil && !errors.Is(err, auction.ErrInsufficientAmount) {
				s.Fail("unexpected error", err.Error())
			}
		}(addr, int64(i+1))
	}
	wg.Wait()

	a := s.get()
	s.Equal("20", a.HighestBid)
	s.Equal(bidders[19], a.HighestBidder)

	// accepted bids are strictly increasing
	for i := 2; i < len(a.Bidders); i++ {
		prev := domain.MustParseWei(a.Bidders[i-1].Value)
		s.Equal(1, domain.MustParseWei(a.Bidders[i].Value).Cmp(prev))
	}

	// only the leader has funds held, everyone else got theirs back
	total := int64(0)
	for _, addr := range bidders {
		total += s.balance(addr)
	}
	s.Equal(int64(20*100-20), total)
	s.Equal(a.HighestBid, s.held().Amount)
}
