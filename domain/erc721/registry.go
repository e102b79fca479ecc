package erc721

import (
	"errors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

var (
	ErrNotTokenOwner    = errors.New("from is not the token owner")
	ErrOperatorDenied   = errors.New("operator is not approved")
	ErrTokenNotMinted   = errors.New("token not minted")
	ErrTransferReverted = errors.New("transfer reverted")
)

// Registry is the custody ledger of non-fungible tokens
type Registry interface {
	// Operator is the address the engine moves tokens as
	Operator() domain.Address
	OwnerOf(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error)
	IsApprovedForAll(c ctx.Ctx, collection domain.Address, owner, operator domain.Address) (bool, error)
	TransferFrom(c ctx.Ctx, collection domain.Address, from, to domain.Address, tokenId domain.TokenId) error
}

type Holding struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner      domain.Address `json:"owner" bson:"owner"`
}

type Approval struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	Owner      domain.Address `json:"owner" bson:"owner"`
	Operator   domain.Address `json:"operator" bson:"operator"`
	Approved   bool           `json:"approved" bson:"approved"`
}

// LedgerRegistry is a Registry kept in the service's own database
type LedgerRegistry interface {
	Registry
	Mint(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, to domain.Address) error
	SetApprovalForAll(c ctx.Ctx, collection domain.Address, owner, operator domain.Address, approved bool) error
}
