// Package chain is the remote ledger client: a thin binding over the
// deployed LostAndFound contract. Reads go through eth_call against a
// JSON-RPC node; writes are signed locally and submitted as transactions.
// The contract itself is treated as an opaque remote service; all state
// transition rules live on-chain.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Dial connects to the JSON-RPC node and verifies it serves the expected
// chain. A node on the wrong network would silently return data for a
// different deployment, so this is checked once at startup.
func Dial(ctx context.Context, rpcURL string, chainID int64) (*ethclient.Client, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("RPC URL is empty")
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}

	got, err := client.ChainID(dialCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("chain id check failed: %w", err)
	}
	if got.Cmp(big.NewInt(chainID)) != 0 {
		client.Close()
		return nil, fmt.Errorf("node serves chain %s, expected %d", got, chainID)
	}

	return client, nil
}
