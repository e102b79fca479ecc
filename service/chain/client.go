package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/backoff"
	bCtx "github.com/x-xyz/goauction/base/ctx"
	baseeth "github.com/x-xyz/goauction/base/ethereum"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
)

var (
	ErrNoSender      = errors.New("client has no sender key")
	ErrTxReverted    = errors.New("transaction reverted")
	ErrChainMismatch = errors.New("rpc serves another chain")
)

const (
	// DefaultReceiptTimeout applies when ClientCfg.ReceiptTimeout is not set
	DefaultReceiptTimeout = 2 * time.Minute

	receiptPollStart = 500 * time.Millisecond
	receiptPollLimit = 5 * time.Second
)

var met = metrics.New("chain")

type ClientCfg struct {
	ChainId int32
	RpcUrl  string
	// SenderKey signs transactions, empty makes a read-only client
	SenderKey string
	// ReceiptTimeout bounds how long Transact waits to be mined
	ReceiptTimeout time.Duration
}

// Backend is the subset of ethclient.Client the client talks to
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type Client interface {
	ChainId() int32
	// Sender is the account Transact signs with
	Sender() (common.Address, bool)
	Call(bCtx.Ctx, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	// Transact sends a contract call and waits until it is mined successfully
	Transact(bCtx.Ctx, common.Address, abi.ABI, string, ...interface{}) (*types.Receipt, error)
}

type clientImpl struct {
	chainId        int32
	backend        Backend
	key            *ecdsa.PrivateKey
	sender         common.Address
	receiptTimeout time.Duration

	// nonce allocation is serialized per sender
	sendMu sync.Mutex
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": cfg.ChainId,
			"url":     cfg.RpcUrl,
		}).Error("failed to dial rpc")
		return nil, err
	}

	id, err := client.ChainID(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.ChainID failed")
		return nil, err
	} else if id.Int64() != int64(cfg.ChainId) {
		ctx.WithFields(log.Fields{
			"want": cfg.ChainId,
			"got":  id,
		}).Error("chain id mismatch")
		return nil, ErrChainMismatch
	}
	return NewClientWithBackend(cfg, client)
}

func NewClientWithBackend(cfg *ClientCfg, backend Backend) (Client, error) {
	im := &clientImpl{
		chainId:        cfg.ChainId,
		backend:        backend,
		receiptTimeout: cfg.ReceiptTimeout,
	}
	if im.receiptTimeout <= 0 {
		im.receiptTimeout = DefaultReceiptTimeout
	}
	if cfg.SenderKey != "" {
		key, err := baseeth.PrivateKeyFromHex(cfg.SenderKey)
		if err != nil {
			return nil, xerrors.Errorf("invalid sender key: %w", err)
		}
		im.key = key
		im.sender = baseeth.AddressOf(key)
	}
	return im, nil
}

func (c *clientImpl) ChainId() int32 {
	return c.chainId
}

func (c *clientImpl) Sender() (common.Address, bool) {
	return c.sender, c.key != nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	defer met.BumpTime("call.time", "method", method).End()

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := c.backend.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).WithField("method", method).Warn("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) send(ctx bCtx.Ctx, addr common.Address, data []byte) (*types.Transaction, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	msg := ethereum.CallMsg{From: c.sender, To: &addr, Data: data}
	gas, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		// a failing estimate means the call would revert
		ctx.WithField("err", err).Warn("client.EstimateGas failed")
		return nil, fmt.Errorf("%w: %v", ErrTxReverted, err)
	}
	nonce, err := c.backend.PendingNonceAt(ctx, c.sender)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return nil, err
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return nil, err
	}

	tx := types.NewTransaction(nonce, addr, big.NewInt(0), gas, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(int64(c.chainId))), c.key)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return nil, err
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		ctx.WithField("err", err).Error("client.SendTransaction failed")
		return nil, err
	}
	return signed, nil
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (*types.Receipt, error) {
	if c.key == nil {
		return nil, ErrNoSender
	}
	defer met.BumpTime("transact.time", "method", method).End()

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}

	tx, err := c.send(ctx, addr, data)
	if err != nil {
		return nil, err
	}
	logger := ctx.WithFields(log.Fields{"method": method, "tx": tx.Hash().Hex()})
	logger.Info("transaction sent")

	waitCtx, cancel := bCtx.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()
	b := backoff.NewExponential(receiptPollStart, receiptPollLimit)
	for {
		receipt, err := c.backend.TransactionReceipt(waitCtx, tx.Hash())
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				logger.Warn("transaction reverted")
				met.BumpSum("transact.reverted", 1, "method", method)
				return receipt, ErrTxReverted
			}
			return receipt, nil
		} else if !errors.Is(err, ethereum.NotFound) {
			logger.WithField("err", err).Error("client.TransactionReceipt failed")
			return nil, err
		}
		if err := b.Backoff(waitCtx); err != nil {
			logger.WithField("err", err).Error("receipt not found in time")
			return nil, err
		}
	}
}
