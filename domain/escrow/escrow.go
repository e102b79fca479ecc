package escrow

import (
	"errors"
	"math/big"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrHoldMismatch        = errors.New("hold does not match release")
	ErrHoldOccupied        = errors.New("hold already occupied")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// Account is the free balance an address can bid with or withdraw
type Account struct {
	Address   domain.Address `json:"address" bson:"address"`
	Balance   string         `json:"balance" bson:"balance"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Hold is the amount the engine keeps for an asset slot on behalf of Holder
type Hold struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
	Holder     domain.Address `json:"holder" bson:"holder"`
	Amount     string         `json:"amount" bson:"amount"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (h *Hold) AmountValue() *big.Int {
	return domain.MustParseWei(h.Amount)
}

func (h *Hold) IsEmpty() bool {
	return h.Holder.IsEmpty() || h.AmountValue().Sign() == 0
}

type EntryKind string

const (
	EntryDeposit  EntryKind = "deposit"
	EntryWithdraw EntryKind = "withdraw"
	EntryHold     EntryKind = "hold"
	EntryRelease  EntryKind = "release"
)

// Entry is an append-only ledger line. Hold and release entries carry the asset slot.
type Entry struct {
	Id         string         `json:"id" bson:"_id"`
	Kind       EntryKind      `json:"kind" bson:"kind"`
	Address    domain.Address `json:"address" bson:"address"`
	Collection domain.Address `json:"collection,omitempty" bson:"collection,omitempty"`
	TokenId    domain.TokenId `json:"tokenId,omitempty" bson:"tokenId,omitempty"`
	Amount     string         `json:"amount" bson:"amount"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	FindAccount(c ctx.Ctx, address domain.Address) (*Account, error)
	UpsertAccount(c ctx.Ctx, a *Account) error
	FindHold(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*Hold, error)
	UpsertHold(c ctx.Ctx, h *Hold) error
	RemoveHold(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) error
	InsertEntry(c ctx.Ctx, e *Entry) error
	FindEntries(c ctx.Ctx, address domain.Address, offset, limit int) ([]*Entry, error)
}

// UseCase moves funds between free balances and per-slot holds.
// Hold and Release join the caller's transaction, Deposit and Withdraw run their own.
type UseCase interface {
	BalanceOf(c ctx.Ctx, address domain.Address) (*big.Int, error)
	// HeldFor returns an empty hold when nothing is held for the slot
	HeldFor(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (*Hold, error)
	Deposit(c ctx.Ctx, address domain.Address, amount *big.Int) (*Account, error)
	Withdraw(c ctx.Ctx, address domain.Address, amount *big.Int) (*Account, error)
	Hold(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, from domain.Address, amount *big.Int) error
	Release(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, to domain.Address, amount *big.Int) error
	Entries(c ctx.Ctx, address domain.Address, offset, limit int) ([]*Entry, error)
}
