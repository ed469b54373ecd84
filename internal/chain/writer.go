package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// receiptPollInterval is how often WaitSettled re-checks for a receipt.
// Base produces blocks every ~2 seconds.
const receiptPollInterval = 2 * time.Second

// Writer submits state-changing transactions to the contract using a local
// signing key. Writes are never retried: re-submitting a transaction is
// never safe to do implicitly.
type Writer struct {
	contract *Contract
	opts     *bind.TransactOpts
	logger   *zap.SugaredLogger

	// Serializes submissions so pending-nonce lookups stay monotonic.
	mu sync.Mutex
}

// NewWriter builds a Writer from a hex-encoded private key.
func NewWriter(contract *Contract, signerKeyHex string, chainID int64, logger *zap.SugaredLogger) (*Writer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(signerKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse signer key: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(chainID))
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}

	logger.Infow("Transaction relay enabled", "signer", opts.From.Hex())
	return &Writer{contract: contract, opts: opts, logger: logger}, nil
}

// From returns the relay signer address.
func (w *Writer) From() common.Address {
	return w.opts.From
}

func (w *Writer) transact(ctx context.Context, value *big.Int, method string, args ...interface{}) (common.Hash, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	opts := *w.opts
	opts.Context = ctx
	opts.Value = value

	tx, err := w.contract.bound.Transact(&opts, method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s: %w", method, err)
	}

	w.logger.Infow("Transaction submitted",
		"method", method,
		"tx", tx.Hash().Hex(),
		"value", value,
	)
	return tx.Hash(), nil
}

// ReportLostItem submits a new report carrying the bounty as the
// transaction value.
func (w *Writer) ReportLostItem(ctx context.Context, title, description, imageURL, location, category string, bounty *big.Int) (common.Hash, error) {
	return w.transact(ctx, bounty, "reportLostItem", title, description, imageURL, location, category)
}

// ClaimItem submits a claim with its justification message.
func (w *Writer) ClaimItem(ctx context.Context, id uint64, message string) (common.Hash, error) {
	return w.transact(ctx, nil, "claimItem", new(big.Int).SetUint64(id), message)
}

// ConfirmFinder picks one claimant as the item's finder. Owner-only by
// contract enforcement; the exact claimant address must be passed through.
func (w *Writer) ConfirmFinder(ctx context.Context, id uint64, claimant common.Address) (common.Hash, error) {
	return w.transact(ctx, nil, "confirmFinder", new(big.Int).SetUint64(id), claimant)
}

// CancelItemReport withdraws an unresolved report. Refund semantics are
// owned by the contract.
func (w *Writer) CancelItemReport(ctx context.Context, id uint64) (common.Hash, error) {
	return w.transact(ctx, nil, "cancelItemReport", new(big.Int).SetUint64(id))
}

// IncreaseBounty adds amount to an item's bounty.
func (w *Writer) IncreaseBounty(ctx context.Context, id uint64, amount *big.Int) (common.Hash, error) {
	return w.transact(ctx, amount, "increaseBounty", new(big.Int).SetUint64(id))
}

// WaitSettled polls for the transaction receipt until the transaction is
// mined or ctx expires, and returns an error if the transaction reverted.
// Receipt polling replaces any fixed settle delay: the caller learns the
// actual confirmation, not an assumed latency.
func (w *Writer) WaitSettled(ctx context.Context, txHash common.Hash) error {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := w.contract.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", txHash.Hex())
			}
			return nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			w.logger.Debugw("Receipt poll failed", "tx", txHash.Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}
