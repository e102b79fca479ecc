package chain

import (
	"strings"

	"github.com/x-xyz/goauction/domain"
)

type TokenInfo struct {
	Symbol   string
	Decimals int
}

var (
	chainIdToText = map[domain.ChainId]string{
		domain.ChainId(1):     "ethereum",
		domain.ChainId(5):     "goerli",
		domain.ChainId(56):    "binance smart chain",
		domain.ChainId(97):    "binance smart chain testnet",
		domain.ChainId(250):   "fantom",
		domain.ChainId(31337): "hardhat",
	}

	ether = TokenInfo{Symbol: "ETH", Decimals: 18}

	chainIdToNativeToken = map[domain.ChainId]TokenInfo{
		domain.ChainId(1):   ether,
		domain.ChainId(5):   ether,
		domain.ChainId(56):  {Symbol: "BNB", Decimals: 18},
		domain.ChainId(97):  {Symbol: "BNB", Decimals: 18},
		domain.ChainId(250): {Symbol: "FTM", Decimals: 18},
	}
)

func GetChainUrlPart(chainId domain.ChainId) (string, error) {
	if val, err := GetChainDisplayName(chainId); err != nil {
		return "", err
	} else {
		return strings.ToLower(strings.ReplaceAll(val, " ", "-")), nil
	}
}

func GetChainDisplayName(chainId domain.ChainId) (string, error) {
	if val, ok := chainIdToText[chainId]; !ok {
		return "", domain.ErrNotFound
	} else {
		return val, nil
	}
}

// GetNativeToken falls back to ether for unknown (local) chains
func GetNativeToken(chainId domain.ChainId) TokenInfo {
	if t, ok := chainIdToNativeToken[chainId]; ok {
		return t
	}
	return ether
}
