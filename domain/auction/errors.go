package auction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/x-xyz/goauction/domain"
)

// error kinds, ErrPayoutFailure is both a code and a kind
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAuthorization     = errors.New("authorization error")
	ErrStateConflict     = errors.New("state conflict")
	ErrEconomicViolation = errors.New("economic violation")
	ErrTemporalViolation = errors.New("temporal violation")
)

// error codes
var (
	ErrInvalidAddress       = errors.New("InvalidAddress")
	ErrInvalidStartingPrice = errors.New("InvalidStartingPrice")
	ErrInvalidDuration      = errors.New("InvalidDuration")
	ErrNotOwner             = errors.New("NotOwner")
	ErrNotApproved          = errors.New("NotApproved")
	ErrCallerIsNotSeller    = errors.New("CallerIsNotTheSeller")
	ErrAuctionAlreadyActive = errors.New("AuctionCreated")
	ErrAuctionNotInProgress = errors.New("AuctionNotInProgress")
	ErrInsufficientAmount   = errors.New("InsufficientAmount")
	ErrInsufficientFunds    = errors.New("InsufficientFunds")
	ErrSellerIsBidder       = errors.New("SellerIsTheBidder")
	ErrAuctionNotOverYet    = errors.New("AuctionIsNotOverYet")
	ErrAuctionIsOver        = errors.New("AuctionIsOver")
	ErrPayoutFailure        = errors.New("PayoutFailure")
)

var kinds = map[error]error{
	ErrInvalidAddress:       ErrInvalidInput,
	ErrInvalidStartingPrice: ErrInvalidInput,
	ErrInvalidDuration:      ErrInvalidInput,
	ErrNotOwner:             ErrAuthorization,
	ErrNotApproved:          ErrAuthorization,
	ErrCallerIsNotSeller:    ErrAuthorization,
	ErrAuctionAlreadyActive: ErrStateConflict,
	ErrAuctionNotInProgress: ErrStateConflict,
	ErrInsufficientAmount:   ErrEconomicViolation,
	ErrInsufficientFunds:    ErrEconomicViolation,
	ErrSellerIsBidder:       ErrEconomicViolation,
	ErrAuctionNotOverYet:    ErrTemporalViolation,
	ErrAuctionIsOver:        ErrTemporalViolation,
	ErrPayoutFailure:        ErrPayoutFailure,
}

// Error is a rejected auction operation. errors.Is matches both its code and its kind.
type Error struct {
	Code     error
	Key      Key
	Caller   domain.Address
	Seller   domain.Address
	Owner    domain.Address
	Amount   string
	EndingAt time.Time
	Err      error
}

func (e *Error) Kind() error {
	return kinds[e.Code]
}

func (e *Error) Error() string {
	b := strings.Builder{}
	b.WriteString(e.Code.Error())
	if e.Key.Collection != "" {
		fmt.Fprintf(&b, " collection=%s tokenId=%s", e.Key.Collection, e.Key.TokenId)
	}
	if e.Caller != "" {
		fmt.Fprintf(&b, " caller=%s", e.Caller)
	}
	if e.Seller != "" {
		fmt.Fprintf(&b, " seller=%s", e.Seller)
	}
	if e.Owner != "" {
		fmt.Fprintf(&b, " owner=%s", e.Owner)
	}
	if e.Amount != "" {
		fmt.Fprintf(&b, " amount=%s", e.Amount)
	}
	if !e.EndingAt.IsZero() {
		fmt.Fprintf(&b, " endingAt=%d", e.EndingAt.Unix())
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Is(target error) bool {
	return target == e.Code || target == e.Kind()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail is the client facing form of an Error
type Detail struct {
	Code     string         `json:"code"`
	Kind     string         `json:"kind"`
	Message  string         `json:"message"`
	Caller   domain.Address `json:"caller,omitempty"`
	Seller   domain.Address `json:"seller,omitempty"`
	Owner    domain.Address `json:"owner,omitempty"`
	Amount   string         `json:"amount,omitempty"`
	EndingAt int64          `json:"endingAt,omitempty"`
}

func (e *Error) Detail() Detail {
	d := Detail{
		Code:    e.Code.Error(),
		Message: e.Error(),
		Caller:  e.Caller,
		Seller:  e.Seller,
		Owner:   e.Owner,
		Amount:  e.Amount,
	}
	if k := e.Kind(); k != nil {
		d.Kind = k.Error()
	}
	if !e.EndingAt.IsZero() {
		d.EndingAt = e.EndingAt.Unix()
	}
	return d
}

func InvalidAddress(key Key) error {
	return &Error{Code: ErrInvalidAddress, Key: key}
}

func InvalidStartingPrice(key Key, price string) error {
	return &Error{Code: ErrInvalidStartingPrice, Key: key, Amount: price}
}

func InvalidDuration(key Key) error {
	return &Error{Code: ErrInvalidDuration, Key: key}
}

func NotOwner(key Key, caller, owner domain.Address) error {
	return &Error{Code: ErrNotOwner, Key: key, Caller: caller, Owner: owner}
}

func NotApproved(key Key, owner domain.Address) error {
	return &Error{Code: ErrNotApproved, Key: key, Owner: owner}
}

func AuctionAlreadyActive(key Key) error {
	return &Error{Code: ErrAuctionAlreadyActive, Key: key}
}

func AuctionNotInProgress(key Key) error {
	return &Error{Code: ErrAuctionNotInProgress, Key: key}
}

func InsufficientAmount(key Key, amount string) error {
	return &Error{Code: ErrInsufficientAmount, Key: key, Amount: amount}
}

func InsufficientFunds(key Key, caller domain.Address, amount string, cause error) error {
	return &Error{Code: ErrInsufficientFunds, Key: key, Caller: caller, Amount: amount, Err: cause}
}

func SellerIsBidder(key Key, seller domain.Address) error {
	return &Error{Code: ErrSellerIsBidder, Key: key, Seller: seller, Caller: seller}
}

func CallerIsNotSeller(key Key, caller, seller domain.Address) error {
	return &Error{Code: ErrCallerIsNotSeller, Key: key, Caller: caller, Seller: seller}
}

func AuctionNotOverYet(key Key, endingAt time.Time) error {
	return &Error{Code: ErrAuctionNotOverYet, Key: key, EndingAt: endingAt}
}

func PayoutFailure(key Key, to domain.Address, amount string, cause error) error {
	return &Error{Code: ErrPayoutFailure, Key: key, Caller: to, Amount: amount, Err: cause}
}

// AuctionIsOver rejects a bid that arrives at or after endingAt
func AuctionIsOver(key Key, endingAt time.Time) error {
	return &Error{Code: ErrAuctionIsOver, Key: key, EndingAt: endingAt}
}
