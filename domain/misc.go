package domain

import (
	"math/big"
	"regexp"
	"strings"

	"golang.org/x/xerrors"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

var hexAddressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

// IsEmpty reports whether the address is unset or the zero address.
func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) IsValid() bool {
	return hexAddressRegex.MatchString(string(a))
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok || id.Sign() < 0 {
		return nil, xerrors.Errorf("invalid id %s", i)
	}
	return id, nil
}

// Canonical drops leading zeros and signs so one token has one id.
// Ids that do not parse are returned unchanged.
func (i TokenId) Canonical() TokenId {
	id, err := i.ToBigInt()
	if err != nil {
		return i
	}
	return TokenId(id.String())
}

type TxHash string

// ParseWei parses a non-negative base-10 integer amount.
func ParseWei(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}

// MustParseWei is ParseWei for values known to be well formed, e.g. persisted amounts.
func MustParseWei(s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	n, err := ParseWei(s)
	if err != nil {
		panic(xerrors.Errorf("malformed amount %q: %w", s, err))
	}
	return n
}
