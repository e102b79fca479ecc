// Package abi holds the parsed contract interfaces the service calls.
package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	ERC721ABI  = mustParse("ERC721", erc721ABIJson)
	ERC1271ABI = mustParse("ERC1271", erc1271ABIJson)
)

func mustParse(name, def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("failed to parse " + name + " ABI: " + err.Error())
	}
	return parsed
}
