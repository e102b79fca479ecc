package contract

import (
	"errors"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/goauction/base/abi"
	bCtx "github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/service/chain"
)

// Erc721 reads and moves tokens of deployed ERC721 contracts
type Erc721 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc721(chainService chain.Client) erc721.Registry {
	return &Erc721{
		abi:          baseabi.ERC721ABI,
		chainService: chainService,
	}
}

func isRevert(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}

func (e *Erc721) Operator() domain.Address {
	sender, ok := e.chainService.Sender()
	if !ok {
		return domain.EmptyAddress
	}
	return domain.Address(sender.Hex()).ToLower()
}

func (e *Erc721) OwnerOf(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return "", domain.ErrInvalidNumberFormat
	}
	unpacked, err := e.chainService.Call(ctx, common.HexToAddress(collection.ToLowerStr()), nil, e.abi, "ownerOf", id)
	if isRevert(err) {
		// ownerOf reverts for tokens that do not exist
		return "", erc721.ErrTokenNotMinted
	} else if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).Hex()).ToLower(), nil
}

func (e *Erc721) IsApprovedForAll(ctx bCtx.Ctx, collection domain.Address, owner, operator domain.Address) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, common.HexToAddress(collection.ToLowerStr()), nil, e.abi, "isApprovedForAll",
		common.HexToAddress(owner.ToLowerStr()), common.HexToAddress(operator.ToLowerStr()))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721) TransferFrom(ctx bCtx.Ctx, collection domain.Address, from, to domain.Address, tokenId domain.TokenId) error {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return domain.ErrInvalidNumberFormat
	}
	receipt, err := e.chainService.Transact(ctx, common.HexToAddress(collection.ToLowerStr()), e.abi, "safeTransferFrom",
		common.HexToAddress(from.ToLowerStr()), common.HexToAddress(to.ToLowerStr()), id)
	if errors.Is(err, chain.ErrTxReverted) {
		return erc721.ErrTransferReverted
	} else if err != nil {
		return err
	}
	ctx.WithFields(log.Fields{
		"collection": collection,
		"tokenId":    tokenId,
		"from":       from,
		"to":         to,
		"tx":         receipt.TxHash.Hex(),
		"block":      receipt.BlockNumber,
	}).Info("token transferred")
	return nil
}
