package auction

import (
	"fmt"
	"math/big"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "NOT_STARTED"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusEnded:
		return "ENDED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Key identifies the single auction slot of an asset
type Key struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
}

func NewKey(collection domain.Address, tokenId domain.TokenId) Key {
	return Key{Collection: collection.ToLower(), TokenId: tokenId.Canonical()}
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Collection, k.TokenId)
}

// Bid is an accepted offer. Value is a base-10 wei amount.
type Bid struct {
	Bidder domain.Address `json:"bidder" bson:"bidder"`
	Value  string         `json:"value" bson:"value"`
}

// SentinelBid stands for "no bid yet" in a bidders list
func SentinelBid() Bid {
	return Bid{Bidder: domain.EmptyAddress, Value: "0"}
}

func (b Bid) IsSentinel() bool {
	return b.Bidder.IsEmpty()
}

type Auction struct {
	Collection    domain.Address `json:"collection" bson:"collection"`
	TokenId       domain.TokenId `json:"tokenId" bson:"tokenId"`
	Seller        domain.Address `json:"seller" bson:"seller"`
	StartingAt    time.Time      `json:"startingAt" bson:"startingAt"`
	EndingAt      time.Time      `json:"endingAt" bson:"endingAt"`
	StartingPrice string         `json:"startingPrice" bson:"startingPrice"`
	HighestBid    string         `json:"highestBid" bson:"highestBid"`
	HighestBidder domain.Address `json:"highestBidder" bson:"highestBidder"`
	Bidders       []Bid          `json:"bidders" bson:"bidders"`
	Status        Status         `json:"status" bson:"status"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// NotStarted is the record reported for a key that never had an auction
func NotStarted(key Key) *Auction {
	return &Auction{
		Collection:    key.Collection,
		TokenId:       key.TokenId,
		Seller:        domain.EmptyAddress,
		StartingPrice: "0",
		HighestBid:    "0",
		HighestBidder: domain.EmptyAddress,
		Bidders:       []Bid{},
		Status:        StatusNotStarted,
	}
}

func (a *Auction) Key() Key {
	return Key{Collection: a.Collection, TokenId: a.TokenId}
}

func (a *Auction) HasBid() bool {
	return !a.HighestBidder.IsEmpty()
}

func (a *Auction) HighestBidValue() *big.Int {
	return domain.MustParseWei(a.HighestBid)
}

func (a *Auction) StartingPriceValue() *big.Int {
	return domain.MustParseWei(a.StartingPrice)
}

// Floor reports the minimum bid and whether it may be matched.
// The first bid may equal the starting price, later bids must outbid.
func (a *Auction) Floor() (*big.Int, bool) {
	if !a.HasBid() {
		return a.StartingPriceValue(), true
	}
	return a.HighestBidValue(), false
}

// Accepts reports whether value clears the current floor
func (a *Auction) Accepts(value *big.Int) bool {
	floor, inclusive := a.Floor()
	cmp := value.Cmp(floor)
	return cmp > 0 || (inclusive && cmp == 0)
}

func (a *Auction) IsOver(now time.Time) bool {
	return !now.Before(a.EndingAt)
}

func (a *Auction) Clone() *Auction {
	cp := *a
	cp.Bidders = append([]Bid(nil), a.Bidders...)
	return &cp
}

type CreateRequest struct {
	Collection    domain.Address
	TokenId       domain.TokenId
	StartingPrice *big.Int
	Duration      time.Duration
}

type Repo interface {
	// FindOne returns domain.ErrNotFound for keys that never had an auction
	FindOne(c ctx.Ctx, key Key) (*Auction, error)
	Upsert(c ctx.Ctx, a *Auction) error
}

type UseCase interface {
	Create(c ctx.Ctx, caller domain.Address, req CreateRequest) (*Auction, error)
	Bid(c ctx.Ctx, caller domain.Address, key Key, value *big.Int) (*Auction, error)
	End(c ctx.Ctx, caller domain.Address, key Key) (*Auction, error)
	Get(c ctx.Ctx, key Key) (*Auction, error)
	Events(c ctx.Ctx, key Key, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}
