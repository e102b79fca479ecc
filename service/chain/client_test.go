package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/suite"

	baseabi "github.com/x-xyz/goauction/base/abi"
	bCtx "github.com/x-xyz/goauction/base/ctx"
)

const (
	// first hardhat account
	testKey    = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSender = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

var (
	mockCtx    = bCtx.Background()
	collection = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

type fakeBackend struct {
	callResult  []byte
	callErr     error
	estimateErr error
	sent        []*types.Transaction
	// receipts are handed out one per TransactionReceipt call
	receipts []*types.Receipt
}

func (f *fakeBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(31337), nil
}

func (f *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return f.callResult, f.callErr
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1000000000), nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 100000, f.estimateErr
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if len(f.receipts) == 0 {
		return nil, ethereum.NotFound
	}
	r := f.receipts[0]
	f.receipts = f.receipts[1:]
	if r == nil {
		return nil, ethereum.NotFound
	}
	return r, nil
}

type clientTestSuite struct {
	suite.Suite
	backend *fakeBackend
	im      Client
}

func (ts *clientTestSuite) SetupTest() {
	ts.backend = &fakeBackend{}
	im, err := NewClientWithBackend(&ClientCfg{
		ChainId:        31337,
		SenderKey:      testKey,
		ReceiptTimeout: 3 * time.Second,
	}, ts.backend)
	ts.Require().NoError(err)
	ts.im = im
}

func TestClient(t *testing.T) {
	suite.Run(t, new(clientTestSuite))
}

func (ts *clientTestSuite) TestSender() {
	addr, ok := ts.im.Sender()
	ts.True(ok)
	ts.Equal(testSender, addr.Hex())

	readOnly, err := NewClientWithBackend(&ClientCfg{ChainId: 1}, ts.backend)
	ts.Require().NoError(err)
	_, ok = readOnly.Sender()
	ts.False(ok)
	_, err = readOnly.Transact(mockCtx, collection, baseabi.ERC721ABI, "transferFrom", common.Address{}, common.Address{}, big.NewInt(1))
	ts.Equal(ErrNoSender, err)

	_, err = NewClientWithBackend(&ClientCfg{SenderKey: "nope"}, ts.backend)
	ts.Error(err)
}

func (ts *clientTestSuite) TestCall() {
	owner := common.HexToAddress(testSender)
	out, err := baseabi.ERC721ABI.Methods["ownerOf"].Outputs.Pack(owner)
	ts.Require().NoError(err)
	ts.backend.callResult = out

	res, err := ts.im.Call(mockCtx, collection, nil, baseabi.ERC721ABI, "ownerOf", big.NewInt(1))
	ts.Require().NoError(err)
	ts.Equal(owner, res[0].(common.Address))

	boom := errors.New("execution reverted")
	ts.backend.callErr = boom
	_, err = ts.im.Call(mockCtx, collection, nil, baseabi.ERC721ABI, "ownerOf", big.NewInt(1))
	ts.Equal(boom, err)

	_, err = ts.im.Call(mockCtx, collection, nil, baseabi.ERC721ABI, "noSuchMethod")
	ts.Error(err)
}

func (ts *clientTestSuite) TestTransact() {
	ts.backend.receipts = []*types.Receipt{nil, {Status: types.ReceiptStatusSuccessful}}

	receipt, err := ts.im.Transact(mockCtx, collection, baseabi.ERC721ABI, "safeTransferFrom",
		common.HexToAddress(testSender), common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), big.NewInt(7))
	ts.Require().NoError(err)
	ts.Equal(types.ReceiptStatusSuccessful, receipt.Status)

	ts.Require().Len(ts.backend.sent, 1)
	tx := ts.backend.sent[0]
	ts.Equal(collection, *tx.To())
	ts.Equal(uint64(0), tx.Nonce())
	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(31337)), tx)
	ts.NoError(err)
	ts.Equal(testSender, from.Hex())
}

func (ts *clientTestSuite) TestTransactReverted() {
	ts.backend.receipts = []*types.Receipt{{Status: types.ReceiptStatusFailed}}

	_, err := ts.im.Transact(mockCtx, collection, baseabi.ERC721ABI, "transferFrom",
		common.HexToAddress(testSender), common.Address{}, big.NewInt(7))
	ts.Equal(ErrTxReverted, err)

	ts.backend.estimateErr = errors.New("execution reverted: not owner")
	_, err = ts.im.Transact(mockCtx, collection, baseabi.ERC721ABI, "transferFrom",
		common.HexToAddress(testSender), common.Address{}, big.NewInt(7))
	ts.True(errors.Is(err, ErrTxReverted))
	ts.Len(ts.backend.sent, 1)
}

func (ts *clientTestSuite) TestTransactTimeout() {
	c, cancel := bCtx.WithTimeout(mockCtx, 100*time.Millisecond)
	defer cancel()

	_, err := ts.im.Transact(c, collection, baseabi.ERC721ABI, "transferFrom",
		common.HexToAddress(testSender), common.Address{}, big.NewInt(7))
	ts.Error(err)
}
