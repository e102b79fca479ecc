package validator

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// IsValidWei accepts positive base 10 integers
func IsValidWei(s string) bool {
	if s == "" || strings.HasPrefix(s, "+") {
		return false
	}
	v, ok := new(big.Int).SetString(s, 10)
	return ok && v.Sign() > 0
}

// New returns a validator with the service's custom tags:
//   - wei: positive decimal integer string
//   - duration: positive time.ParseDuration string
func New() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("wei", func(fl validator.FieldLevel) bool {
		return IsValidWei(fl.Field().String())
	})
	v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
