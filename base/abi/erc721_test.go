package abi

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func TestERC721ABI(t *testing.T) {
	req := require.New(t)
	for _, m := range []string{"ownerOf", "getApproved", "isApprovedForAll", "safeTransferFrom", "transferFrom", "supportsInterface"} {
		_, ok := ERC721ABI.Methods[m]
		req.True(ok, m)
	}
	transfer, ok := ERC721ABI.Events["Transfer"]
	req.True(ok)
	req.Equal("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", transfer.ID.Hex())
}

func TestERC1271ABI(t *testing.T) {
	req := require.New(t)
	m, ok := ERC1271ABI.Methods["isValidSignature"]
	req.True(ok)
	req.Equal("0x1626ba7e", hexutil.Encode(m.ID))
}
