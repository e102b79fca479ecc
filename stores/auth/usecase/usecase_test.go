package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/ethereum"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	mContract "github.com/x-xyz/goauction/service/chain/contract/mocks"
	"github.com/x-xyz/goauction/stores/auth/usecase"
)

var mockCtx = ctx.Background()

type authSuite struct {
	suite.Suite
	erc1271 *mContract.Erc1271Contract
	im      domain.AuthUsecase
}

func (s *authSuite) SetupTest() {
	s.erc1271 = &mContract.Erc1271Contract{}
	s.im = usecase.New(&usecase.AuthUseCaseCfg{
		JwtSecret:   "jwt-secret",
		TokenTtl:    time.Hour,
		MsgTemplate: "nonce: %s",
		Nonces: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "nonce",
			Cache: primitive.NewPrimitive("nonce", 1),
		}),
		Erc1271: s.erc1271,
	})
}

func (s *authSuite) TearDownTest() {
	s.erc1271.AssertExpectations(s.T())
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(authSuite))
}

func (s *authSuite) sign(msg string) (domain.Address, string) {
	key, _, err := ethereum.GenerateKey()
	s.Require().NoError(err)
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	s.Require().NoError(err)
	return domain.Address(ethereum.AddressOf(key).Hex()), hexutil.Encode(sig)
}

func (s *authSuite) TestSignAndParseToken() {
	tkn, err := s.im.SignToken(mockCtx, "0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	s.NoError(err)
	s.NotEmpty(tkn)
	ads, err := s.im.ParseToken(mockCtx, tkn)
	s.NoError(err)
	s.Equal(domain.Address("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"), ads)

	other := usecase.New(&usecase.AuthUseCaseCfg{JwtSecret: "other-secret"})
	_, err = other.ParseToken(mockCtx, tkn)
	s.Error(err)
}

func (s *authSuite) TestExpiredToken() {
	past := usecase.New(&usecase.AuthUseCaseCfg{
		JwtSecret: "jwt-secret",
		TokenTtl:  time.Minute,
		Now:       func() time.Time { return time.Now().Add(-time.Hour) },
	})
	tkn, err := past.SignToken(mockCtx, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	s.Require().NoError(err)
	_, err = s.im.ParseToken(mockCtx, tkn)
	s.Error(err)
}

func (s *authSuite) TestSignIn() {
	_, err := s.im.Nonce(mockCtx, "0x123")
	s.Equal(domain.ErrInvalidAddress, err)

	// the signer is only known after signing, so sign a nonce issued for it
	key, _, err := ethereum.GenerateKey()
	s.Require().NoError(err)
	address := domain.Address(ethereum.AddressOf(key).Hex())

	_, err = s.im.SignIn(mockCtx, address, "0x00")
	s.Equal(domain.ErrUnauthorized, err)

	msg, err := s.im.Nonce(mockCtx, address)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(msg, "nonce: "))

	sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), key)
	s.Require().NoError(err)

	tkn, err := s.im.SignIn(mockCtx, address, hexutil.Encode(sig))
	s.Require().NoError(err)
	ads, err := s.im.ParseToken(mockCtx, tkn)
	s.NoError(err)
	s.Equal(address.ToLower(), ads)

	// nonces are single use
	_, err = s.im.SignIn(mockCtx, address, hexutil.Encode(sig))
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *authSuite) TestSignInWrongSigner() {
	wallet := domain.Address("0xac461fdfc10c71861f37fe42589334e021baa1ee")
	msg, err := s.im.Nonce(mockCtx, wallet)
	s.Require().NoError(err)

	_, sig := s.sign(msg)
	s.erc1271.On("IsValidSignature", mock.Anything, wallet, common.BytesToHash(accounts.TextHash([]byte(msg))), hexutil.MustDecode(sig)).
		Return(false, nil).Once()

	_, err = s.im.SignIn(mockCtx, wallet, sig)
	s.Equal(domain.ErrInvalidSignature, err)
}

func (s *authSuite) TestSignInContractWallet() {
	wallet := domain.Address("0xac461fdfc10c71861f37fe42589334e021baa1ee")
	msg, err := s.im.Nonce(mockCtx, wallet)
	s.Require().NoError(err)

	_, sig := s.sign(msg)
	s.erc1271.On("IsValidSignature", mock.Anything, wallet, mock.Anything, mock.Anything).Return(true, nil).Once()

	tkn, err := s.im.SignIn(mockCtx, wallet, sig)
	s.NoError(err)
	s.NotEmpty(tkn)
}
