package usecase

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/ethereum"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/chain/contract"
)

const (
	DefaultTokenTtl    = 24 * time.Hour
	DefaultMsgTemplate = "Sign in to the auction house with nonce %s"
)

type AuthUseCaseCfg struct {
	JwtSecret string
	TokenTtl  time.Duration
	// MsgTemplate has a single %s replaced by the nonce
	MsgTemplate string
	// Nonces keeps one pending nonce per address, its ttl bounds the sign-in window
	Nonces cache.Service
	// Erc1271 verifies contract wallets, nil accepts only EOA signatures
	Erc1271 contract.Erc1271Contract
	Now     func() time.Time
}

type impl struct {
	jwtSecret   []byte
	tokenTtl    time.Duration
	msgTemplate string
	nonces      cache.Service
	erc1271     contract.Erc1271Contract
	now         func() time.Time
}

func New(cfg *AuthUseCaseCfg) domain.AuthUsecase {
	im := &impl{
		jwtSecret:   []byte(cfg.JwtSecret),
		tokenTtl:    cfg.TokenTtl,
		msgTemplate: cfg.MsgTemplate,
		nonces:      cfg.Nonces,
		erc1271:     cfg.Erc1271,
		now:         cfg.Now,
	}
	if im.tokenTtl <= 0 {
		im.tokenTtl = DefaultTokenTtl
	}
	if im.msgTemplate == "" {
		im.msgTemplate = DefaultMsgTemplate
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *impl) message(nonce string) string {
	return fmt.Sprintf(im.msgTemplate, nonce)
}

func (im *impl) Nonce(ctx ctx.Ctx, address domain.Address) (string, error) {
	if !address.IsValid() {
		return "", domain.ErrInvalidAddress
	}
	nonce := uuid.NewString()
	if err := im.nonces.Set(ctx, address.ToLowerStr(), nonce); err != nil {
		ctx.WithField("err", err).Error("nonces.Set failed")
		return "", err
	}
	return im.message(nonce), nil
}

func (im *impl) verify(ctx ctx.Ctx, address domain.Address, msg []byte, signature string) bool {
	signer, err := ethereum.RecoverMsgSigner(msg, signature)
	if err == nil && domain.Address(signer.Hex()).Equals(address) {
		return true
	}
	if im.erc1271 == nil {
		return false
	}
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false
	}
	ok, err := im.erc1271.IsValidSignature(ctx, address, common.BytesToHash(accounts.TextHash(msg)), sig)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Warn("erc1271.IsValidSignature failed")
		return false
	}
	return ok
}

func (im *impl) SignIn(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if !address.IsValid() {
		return "", domain.ErrInvalidAddress
	}
	var nonce string
	if err := im.nonces.Get(ctx, address.ToLowerStr(), &nonce); err == cache.ErrNotFound {
		return "", domain.ErrUnauthorized
	} else if err != nil {
		ctx.WithField("err", err).Error("nonces.Get failed")
		return "", err
	}

	if !im.verify(ctx, address, []byte(im.message(nonce)), signature) {
		return "", domain.ErrInvalidSignature
	}

	// a nonce signs in once
	if err := im.nonces.Del(ctx, address.ToLowerStr()); err != nil {
		ctx.WithField("err", err).Error("nonces.Del failed")
		return "", err
	}
	return im.SignToken(ctx, address)
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	claims := domain.JwtCustomClaims{
		Address: address.ToLower(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  im.now().Unix(),
			ExpiresAt: im.now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return domain.EmptyAddress, err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return domain.EmptyAddress, domain.ErrUnauthorized
}
