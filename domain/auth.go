package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/goauction/base/ctx"
)

// JwtCustomClaims is the access token payload
type JwtCustomClaims struct {
	Address Address `json:"address"` // lower case
	jwt.StandardClaims
}

// AuthUsecase signs accounts in by an EIP-191 signature over a one-time nonce
type AuthUsecase interface {
	// Nonce issues a one-time message the address has to sign
	Nonce(ctx ctx.Ctx, address Address) (string, error)
	// SignIn verifies the signed nonce and returns a token for the address
	SignIn(ctx ctx.Ctx, address Address, signature string) (string, error)
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (Address, error)
}
