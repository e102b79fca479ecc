package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

var (
	mockCtx    = ctx.Background()
	now        = time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	seller     = domain.Address("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	bidder     = domain.Address("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	collection = domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3")
)

type auctionSuite struct {
	suite.Suite
	im auction.Repo
}

func (s *auctionSuite) SetupTest() {
	s.im = NewAuctionRepo(query.NewMemory())
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) TestFindOneNotFound() {
	_, err := s.im.FindOne(mockCtx, auction.NewKey(collection, "1"))
	s.Equal(domain.ErrNotFound, err)
}

func (s *auctionSuite) TestUpsert() {
	a := &auction.Auction{
		Collection:    "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		TokenId:       "1",
		Seller:        seller,
		StartingAt:    now,
		EndingAt:      now.Add(10 * time.Second),
		StartingPrice: "1",
		HighestBid:    "0",
		HighestBidder: domain.EmptyAddress,
		Bidders:       []auction.Bid{auction.SentinelBid()},
		Status:        auction.StatusInProgress,
	}
	s.Require().NoError(s.im.Upsert(mockCtx, a))

	got, err := s.im.FindOne(mockCtx, auction.NewKey(collection, "1"))
	s.Require().NoError(err)
	s.Equal(collection, got.Collection)
	s.Equal(auction.StatusInProgress, got.Status)
	s.True(got.EndingAt.Equal(now.Add(10 * time.Second)))
	s.Equal([]auction.Bid{auction.SentinelBid()}, got.Bidders)

	// a second write replaces the record of the same key
	a.Bidders = append(a.Bidders, auction.Bid{Bidder: bidder, Value: "2"})
	a.HighestBid = "2"
	a.HighestBidder = bidder
	s.Require().NoError(s.im.Upsert(mockCtx, a))

	got, err = s.im.FindOne(mockCtx, auction.NewKey(collection, "1"))
	s.Require().NoError(err)
	s.Equal("2", got.HighestBid)
	s.Equal(bidder, got.HighestBidder)
	s.Len(got.Bidders, 2)

	_, err = s.im.FindOne(mockCtx, auction.NewKey(collection, "2"))
	s.Equal(domain.ErrNotFound, err)
}
