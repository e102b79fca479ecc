package auction

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type EventType string

const (
	EventAuctionCreated EventType = "AuctionCreated"
	EventNewBid         EventType = "NewBid"
	EventAuctionEnded   EventType = "AuctionEnded"
)

// Event is a lifecycle notification. Only the fields relevant to Type are set.
type Event struct {
	Id         string         `json:"id" bson:"_id"`
	Type       EventType      `json:"type" bson:"type"`
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
	Seller     domain.Address `json:"seller,omitempty" bson:"seller,omitempty"`
	Bidder     domain.Address `json:"bidder,omitempty" bson:"bidder,omitempty"`
	Value      string         `json:"value,omitempty" bson:"value,omitempty"`
	Winner     domain.Address `json:"winner,omitempty" bson:"winner,omitempty"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
}

func newEvent(typ EventType, key Key, at time.Time) *Event {
	return &Event{
		Id:         uuid.NewString(),
		Type:       typ,
		Collection: key.Collection,
		TokenId:    key.TokenId,
		CreatedAt:  at,
	}
}

func NewAuctionCreated(a *Auction) *Event {
	e := newEvent(EventAuctionCreated, a.Key(), a.StartingAt)
	e.Seller = a.Seller
	e.Value = a.StartingPrice
	return e
}

func NewNewBid(key Key, bidder domain.Address, value string, at time.Time) *Event {
	e := newEvent(EventNewBid, key, at)
	e.Bidder = bidder
	e.Value = value
	return e
}

// NewAuctionEnded carries the winner, or domain.EmptyAddress when nobody bid
func NewAuctionEnded(key Key, seller, winner domain.Address, value string, at time.Time) *Event {
	e := newEvent(EventAuctionEnded, key, at)
	e.Seller = seller
	e.Winner = winner
	e.Value = value
	return e
}

type EventFindAllOptions struct {
	Type   *EventType
	Offset *int32
	Limit  *int32
}

type EventFindAllOptionsFunc func(*EventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (EventFindAllOptions, error) {
	res := EventFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func EventWithType(typ EventType) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Type = &typ
		return nil
	}
}

func EventWithPagination(offset int32, limit int32) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type EventRepo interface {
	Insert(c ctx.Ctx, e *Event) error
	// FindAll returns events of a key, oldest first
	FindAll(c ctx.Ctx, key Key, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}

// Listener receives events after the operation that produced them has committed.
type Listener interface {
	Name() string
	Handle(c ctx.Ctx, e *Event, a *Auction) error
}
