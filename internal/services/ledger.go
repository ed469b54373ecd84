// Package services contains business logic layers.
// Services are called by handlers and read through the chain client.
package services

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// LedgerReader is the read surface of the deployed contract.
// Implemented by chain.Contract; stubbed in tests.
type LedgerReader interface {
	ItemCount(ctx context.Context) (uint64, error)
	Item(ctx context.Context, id uint64) (models.Item, error)
	Claimants(ctx context.Context, id uint64) ([]common.Address, error)
	ClaimMessage(ctx context.Context, id uint64, claimant common.Address) (string, error)
	UserProfile(ctx context.Context, addr common.Address) (models.UserProfile, error)
}

// LedgerWriter is the write surface of the deployed contract.
// Implemented by chain.Writer; stubbed in tests.
type LedgerWriter interface {
	ReportLostItem(ctx context.Context, title, description, imageURL, location, category string, bounty *big.Int) (common.Hash, error)
	ClaimItem(ctx context.Context, id uint64, message string) (common.Hash, error)
	ConfirmFinder(ctx context.Context, id uint64, claimant common.Address) (common.Hash, error)
	CancelItemReport(ctx context.Context, id uint64) (common.Hash, error)
	IncreaseBounty(ctx context.Context, id uint64, amount *big.Int) (common.Hash, error)
	WaitSettled(ctx context.Context, txHash common.Hash) error
}
