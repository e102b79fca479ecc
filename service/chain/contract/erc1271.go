package contract

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/goauction/base/abi"
	bCtx "github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/service/chain"
)

// erc1271MagicValue is bytes4(keccak256("isValidSignature(bytes32,bytes)"))
var erc1271MagicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

// Erc1271Contract verifies signatures of contract wallets
type Erc1271Contract interface {
	IsValidSignature(ctx bCtx.Ctx, addr domain.Address, hash common.Hash, signature []byte) (bool, error)
}

type erc1271 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc1271(chainService chain.Client) Erc1271Contract {
	return &erc1271{
		chainService: chainService,
		abi:          baseabi.ERC1271ABI,
	}
}

// IsValidSignature is false, not an error, when the wallet rejects by reverting
// or returns something other than the magic value.
func (e *erc1271) IsValidSignature(ctx bCtx.Ctx, addr domain.Address, hash common.Hash, signature []byte) (bool, error) {
	out, err := e.chainService.Call(ctx, common.HexToAddress(addr.ToLowerStr()), nil, e.abi, "isValidSignature", hash, signature)
	if isRevert(err) {
		return false, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{"err": err, "wallet": addr}).Error("chainService.Call failed")
		return false, err
	}
	if len(out) == 0 {
		return false, nil
	}
	magic, ok := out[0].([4]byte)
	return ok && magic == erc1271MagicValue, nil
}
