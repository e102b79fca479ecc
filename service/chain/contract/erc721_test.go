package contract

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/erc721"
	"github.com/x-xyz/goauction/service/chain"
	chainMocks "github.com/x-xyz/goauction/service/chain/mocks"
)

var (
	mockCtx = bCtx.Background()

	collection  = domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	collAddr    = common.HexToAddress(string(collection))
	seller      = domain.Address("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	bidder      = domain.Address("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	operator    = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	nilBlock    *big.Int
	errReverted = errors.New("execution reverted: ERC721: invalid token ID")
)

type erc721TestSuite struct {
	suite.Suite
	client *chainMocks.Client
	im     erc721.Registry
}

func (ts *erc721TestSuite) SetupTest() {
	ts.client = &chainMocks.Client{}
	ts.im = NewErc721(ts.client)
}

func (ts *erc721TestSuite) TearDownTest() {
	ts.client.AssertExpectations(ts.T())
}

func TestErc721(t *testing.T) {
	suite.Run(t, new(erc721TestSuite))
}

func (ts *erc721TestSuite) TestOperator() {
	ts.client.On("Sender").Return(operator, true).Once()
	ts.Equal(domain.Address("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc"), ts.im.Operator())

	ts.client.On("Sender").Return(common.Address{}, false).Once()
	ts.Equal(domain.EmptyAddress, ts.im.Operator())
}

func (ts *erc721TestSuite) TestOwnerOf() {
	ts.client.On("Call", mockCtx, collAddr, nilBlock, mock.Anything, "ownerOf", big.NewInt(7)).
		Return([]interface{}{common.HexToAddress(string(seller))}, nil).Once()
	owner, err := ts.im.OwnerOf(mockCtx, collection, "7")
	ts.NoError(err)
	ts.Equal(seller, owner)

	ts.client.On("Call", mockCtx, collAddr, nilBlock, mock.Anything, "ownerOf", big.NewInt(8)).
		Return(nil, errReverted).Once()
	_, err = ts.im.OwnerOf(mockCtx, collection, "8")
	ts.Equal(erc721.ErrTokenNotMinted, err)

	_, err = ts.im.OwnerOf(mockCtx, collection, "abc")
	ts.Equal(domain.ErrInvalidNumberFormat, err)
}

func (ts *erc721TestSuite) TestIsApprovedForAll() {
	ts.client.On("Call", mockCtx, collAddr, nilBlock, mock.Anything, "isApprovedForAll",
		common.HexToAddress(string(seller)), operator).Return([]interface{}{true}, nil).Once()

	ok, err := ts.im.IsApprovedForAll(mockCtx, collection, seller, domain.Address(operator.Hex()))
	ts.NoError(err)
	ts.True(ok)
}

func (ts *erc721TestSuite) TestTransferFrom() {
	from, to := common.HexToAddress(string(seller)), common.HexToAddress(string(bidder))
	ts.client.On("Transact", mockCtx, collAddr, mock.Anything, "safeTransferFrom", from, to, big.NewInt(7)).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(12)}, nil).Once()
	ts.NoError(ts.im.TransferFrom(mockCtx, collection, seller, bidder, "7"))

	ts.client.On("Transact", mockCtx, collAddr, mock.Anything, "safeTransferFrom", from, to, big.NewInt(8)).
		Return(nil, chain.ErrTxReverted).Once()
	ts.Equal(erc721.ErrTransferReverted, ts.im.TransferFrom(mockCtx, collection, seller, bidder, "8"))
}
