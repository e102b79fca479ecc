package pricefomatter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
)

type formatterSuite struct {
	suite.Suite
	f PriceFormatter
}

func (s *formatterSuite) SetupTest() {
	s.f = NewPriceFormatter(1)
}

func (s *formatterSuite) TestDisplayPrice() {
	tests := []struct {
		desc   string
		wei    *big.Int
		expect string
	}{
		{"starting price", big.NewInt(10000000000000000), "0.01 ETH"},
		{"one ether", new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), "1 ETH"},
		{"zero", big.NewInt(0), "0 ETH"},
		{"nil", nil, "0 ETH"},
	}
	for _, t := range tests {
		s.Equal(t.expect, s.f.String(t.wei), t.desc)
	}
}

func (s *formatterSuite) TestToWei() {
	wei, err := s.f.ToWei("0.01")
	s.Require().NoError(err)
	s.Equal("10000000000000000", wei.String())

	_, err = s.f.ToWei("0.0000000000000000001")
	s.Error(err)

	_, err = s.f.ToWei("-1")
	s.Error(err)

	_, err = s.f.ToWei("abc")
	s.Error(err)
}

func (s *formatterSuite) TestUnknownChainFallsBackToEther() {
	f := NewPriceFormatter(31337)
	s.Equal("2 ETH", f.String(new(big.Int).Mul(big.NewInt(2), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))))
}

func TestFormatterSuite(t *testing.T) {
	suite.Run(t, new(formatterSuite))
}
