package pricefomatter

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/chain"
)

type PriceFormatter interface {
	// DisplayPrice converts a wei amount into native token units
	DisplayPrice(value *big.Int) decimal.Decimal
	// ToWei parses a display price, e.g. "0.01", back into wei
	ToWei(displayPrice string) (*big.Int, error)
	// String renders value with the native token symbol, e.g. "0.01 ETH"
	String(value *big.Int) string
}

type impl struct {
	token chain.TokenInfo
}

func NewPriceFormatter(chainId domain.ChainId) PriceFormatter {
	return &impl{token: chain.GetNativeToken(chainId)}
}

func (f *impl) DisplayPrice(value *big.Int) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, int32(-f.token.Decimals))
}

func (f *impl) ToWei(displayPrice string) (*big.Int, error) {
	d, err := decimal.NewFromString(displayPrice)
	if err != nil {
		return nil, domain.ErrInvalidNumberFormat
	}
	wei := d.Shift(int32(f.token.Decimals))
	if !wei.Equal(wei.Truncate(0)) || wei.IsNegative() {
		return nil, domain.ErrInvalidNumberFormat
	}
	return wei.BigInt(), nil
}

func (f *impl) String(value *big.Int) string {
	return f.DisplayPrice(value).String() + " " + f.token.Symbol
}
