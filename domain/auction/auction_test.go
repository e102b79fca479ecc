package auction

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/domain"
)

var key = NewKey("0x5FbDB2315678afecb367f032d93F642f64180aa3", "7")

func TestNewKey(t *testing.T) {
	req := require.New(t)
	req.Equal(domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3"), key.Collection)
	req.Equal("0x5fbdb2315678afecb367f032d93f642f64180aa3/7", key.String())

	// one token, one slot
	for _, id := range []domain.TokenId{"07", "007", "+7"} {
		req.Equal(key, NewKey("0x5fbdb2315678afecb367f032d93f642f64180aa3", id))
	}
	req.Equal(domain.TokenId("x7"), NewKey("0x5fbdb2315678afecb367f032d93f642f64180aa3", "x7").TokenId)
}

func TestAccepts(t *testing.T) {
	req := require.New(t)
	a := NotStarted(key)
	a.StartingPrice = "10"

	// first bid may match the starting price
	req.False(a.Accepts(big.NewInt(9)))
	req.True(a.Accepts(big.NewInt(10)))
	req.True(a.Accepts(big.NewInt(11)))

	a.HighestBid = "12"
	a.HighestBidder = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"
	req.False(a.Accepts(big.NewInt(12)))
	req.True(a.Accepts(big.NewInt(13)))
}

func TestIsOver(t *testing.T) {
	req := require.New(t)
	end := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	a := &Auction{EndingAt: end}
	req.False(a.IsOver(end.Add(-time.Nanosecond)))
	req.True(a.IsOver(end))
	req.True(a.IsOver(end.Add(time.Second)))
}

func TestClone(t *testing.T) {
	req := require.New(t)
	a := NotStarted(key)
	a.Bidders = []Bid{SentinelBid()}
	cp := a.Clone()
	cp.Bidders = append(cp.Bidders, Bid{Bidder: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", Value: "1"})
	cp.Bidders[0].Value = "99"
	req.Len(a.Bidders, 1)
	req.Equal("0", a.Bidders[0].Value)
}

func TestNotStarted(t *testing.T) {
	req := require.New(t)
	a := NotStarted(key)
	req.Equal(StatusNotStarted, a.Status)
	req.Equal("NOT_STARTED", a.Status.String())
	req.False(a.HasBid())
	req.Equal(int64(0), a.HighestBidValue().Int64())
	req.True(SentinelBid().IsSentinel())
}

func TestErrorKinds(t *testing.T) {
	req := require.New(t)
	cause := errors.New("boom")

	cases := []struct {
		err  error
		code error
		kind error
	}{
		{InvalidAddress(key), ErrInvalidAddress, ErrInvalidInput},
		{InvalidStartingPrice(key, "0"), ErrInvalidStartingPrice, ErrInvalidInput},
		{InvalidDuration(key), ErrInvalidDuration, ErrInvalidInput},
		{NotOwner(key, "0x1", "0x2"), ErrNotOwner, ErrAuthorization},
		{NotApproved(key, "0x2"), ErrNotApproved, ErrAuthorization},
		{CallerIsNotSeller(key, "0x1", "0x2"), ErrCallerIsNotSeller, ErrAuthorization},
		{AuctionAlreadyActive(key), ErrAuctionAlreadyActive, ErrStateConflict},
		{AuctionNotInProgress(key), ErrAuctionNotInProgress, ErrStateConflict},
		{InsufficientAmount(key, "1"), ErrInsufficientAmount, ErrEconomicViolation},
		{InsufficientFunds(key, "0x1", "1", cause), ErrInsufficientFunds, ErrEconomicViolation},
		{SellerIsBidder(key, "0x1"), ErrSellerIsBidder, ErrEconomicViolation},
		{AuctionNotOverYet(key, time.Unix(100, 0)), ErrAuctionNotOverYet, ErrTemporalViolation},
		{AuctionIsOver(key, time.Unix(100, 0)), ErrAuctionIsOver, ErrTemporalViolation},
		{PayoutFailure(key, "0x1", "1", cause), ErrPayoutFailure, ErrPayoutFailure},
	}
	for _, c := range cases {
		req.True(errors.Is(c.err, c.code), c.err.Error())
		req.True(errors.Is(c.err, c.kind), c.err.Error())
		req.False(errors.Is(c.err, domain.ErrNotFound), c.err.Error())
	}

	req.True(errors.Is(PayoutFailure(key, "0x1", "1", cause), cause))
}

func TestErrorDetail(t *testing.T) {
	req := require.New(t)
	err := AuctionNotOverYet(key, time.Unix(100, 0)).(*Error)
	d := err.Detail()
	req.Equal("AuctionIsNotOverYet", d.Code)
	req.Equal("temporal violation", d.Kind)
	req.Equal(int64(100), d.EndingAt)
	req.Equal("AuctionIsNotOverYet collection=0x5fbdb2315678afecb367f032d93f642f64180aa3 tokenId=7 endingAt=100", d.Message)

	d = InsufficientAmount(key, "3").(*Error).Detail()
	req.Equal("3", d.Amount)
	req.Equal("economic violation", d.Kind)
}
