package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// Contract wraps the read surface of the deployed LostAndFound contract.
type Contract struct {
	address common.Address
	bound   *bind.BoundContract
	client  *ethclient.Client
	logger  *zap.SugaredLogger
}

// NewContract binds the contract at address through the given client.
func NewContract(client *ethclient.Client, address common.Address, logger *zap.SugaredLogger) *Contract {
	return &Contract{
		address: address,
		bound:   bind.NewBoundContract(address, lostFoundABI, client, client, client),
		client:  client,
		logger:  logger,
	}
}

// Address returns the bound contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// Ping checks node reachability. Used by the readiness probe.
func (c *Contract) Ping(ctx context.Context) error {
	if _, err := c.client.BlockNumber(ctx); err != nil {
		return fmt.Errorf("node unreachable: %w", err)
	}
	return nil
}

// ItemCount reads itemCounter, the highest assigned item id.
func (c *Contract) ItemCount(ctx context.Context) (uint64, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "itemCounter"); err != nil {
		return 0, fmt.Errorf("itemCounter: %w", err)
	}
	return out[0].(*big.Int).Uint64(), nil
}

// Item reads one item record. Claimants and claim messages are separate
// calls; the returned Item carries none.
func (c *Contract) Item(ctx context.Context, id uint64) (models.Item, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "items", new(big.Int).SetUint64(id)); err != nil {
		return models.Item{}, fmt.Errorf("items(%d): %w", id, err)
	}

	return models.Item{
		ID:           out[0].(*big.Int).Uint64(),
		Owner:        out[1].(common.Address),
		Title:        out[2].(string),
		Description:  out[3].(string),
		ImageURL:     out[4].(string),
		BountyAmount: models.NewBigInt(out[5].(*big.Int)),
		Finder:       out[6].(common.Address),
		IsClaimed:    out[7].(bool),
		IsResolved:   out[8].(bool),
		CreatedAt:    out[9].(*big.Int).Int64(),
		Location:     out[10].(string),
		Category:     out[11].(string),
	}, nil
}

// Claimants reads the claimant list for an item, in claim order.
func (c *Contract) Claimants(ctx context.Context, id uint64) ([]common.Address, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getClaimants", new(big.Int).SetUint64(id)); err != nil {
		return nil, fmt.Errorf("getClaimants(%d): %w", id, err)
	}
	return out[0].([]common.Address), nil
}

// ClaimMessage reads the justification one claimant submitted for an item.
func (c *Contract) ClaimMessage(ctx context.Context, id uint64, claimant common.Address) (string, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getClaimMessage", new(big.Int).SetUint64(id), claimant); err != nil {
		return "", fmt.Errorf("getClaimMessage(%d, %s): %w", id, claimant, err)
	}
	return out[0].(string), nil
}

// UserProfile reads the on-chain reputation record for an address.
func (c *Contract) UserProfile(ctx context.Context, addr common.Address) (models.UserProfile, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getUserProfile", addr); err != nil {
		return models.UserProfile{}, fmt.Errorf("getUserProfile(%s): %w", addr, err)
	}

	return models.UserProfile{
		Address:           addr,
		ItemsReported:     out[0].(*big.Int).Uint64(),
		ItemsFound:        out[1].(*big.Int).Uint64(),
		TotalBountyEarned: models.NewBigInt(out[2].(*big.Int)),
		ReputationScore:   models.NewBigInt(out[3].(*big.Int)),
		IsRegistered:      out[4].(bool),
	}, nil
}
