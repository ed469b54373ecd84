// Package models defines the data structures shared across the application.
// Everything here is a read-only projection of contract state: rebuilt
// wholesale from the chain on each load, never mutated locally, never
// persisted. The contract is the sole durable store.
package models

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// BigInt is a currency amount (or other chain integer) in the chain's
// smallest unit. It marshals as a decimal string because wei-scale values
// overflow float64 and JSON numbers are floats in most consumers.
type BigInt struct {
	big.Int
}

// NewBigInt copies v into a BigInt. A nil v yields zero.
func NewBigInt(v *big.Int) *BigInt {
	b := new(BigInt)
	if v != nil {
		b.Set(v)
	}
	return b
}

// MarshalJSON renders the value as a quoted decimal string.
func (b *BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare decimal integers.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if _, ok := b.SetString(s, 10); !ok {
		return fmt.Errorf("invalid integer %q", string(data))
	}
	return nil
}

// Item is one lost-item report as read from the contract, enriched with its
// claimants and their claim messages. Addresses are parsed into
// common.Address at ingestion, so all downstream comparisons are
// case-insensitive by construction.
type Item struct {
	ID            uint64                    `json:"id"`
	Owner         common.Address            `json:"owner"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	ImageURL      string                    `json:"imageUrl"`
	Location      string                    `json:"location"`
	Category      string                    `json:"category"`
	BountyAmount  *BigInt                   `json:"bountyAmount"`
	Finder        common.Address            `json:"finder"`
	IsClaimed     bool                      `json:"isClaimed"`
	IsResolved    bool                      `json:"isResolved"`
	CreatedAt     int64                     `json:"createdAt"`
	Claimants     []common.Address          `json:"claimants"`
	ClaimMessages map[common.Address]string `json:"claimMessages"`
}

// HasClaimant reports whether addr has submitted a claim on this item.
func (i *Item) HasClaimant(addr common.Address) bool {
	for _, c := range i.Claimants {
		if c == addr {
			return true
		}
	}
	return false
}

// UserProfile is the on-chain reputation record for one address.
// Recomputed from scratch on every query.
type UserProfile struct {
	Address           common.Address `json:"address"`
	ItemsReported     uint64         `json:"itemsReported"`
	ItemsFound        uint64         `json:"itemsFound"`
	TotalBountyEarned *BigInt        `json:"totalBountyEarned"`
	ReputationScore   *BigInt        `json:"reputationScore"`
	IsRegistered      bool           `json:"isRegistered"`
}

// LeaderboardEntry is one row of the derived top-finders view.
// TotalEarned is net of the platform fee.
type LeaderboardEntry struct {
	Address     common.Address `json:"address"`
	ItemsFound  int            `json:"itemsFound"`
	TotalEarned *BigInt        `json:"totalEarned"`
}

// Snapshot is one consistent aggregation of the full item set. Snapshots are
// immutable once published; the generation orders concurrent loads so a
// stale load can never replace a newer snapshot.
type Snapshot struct {
	Items      []Item    `json:"items"`
	ItemCount  uint64    `json:"itemCount"`
	LoadedAt   time.Time `json:"loadedAt"`
	Generation uint64    `json:"-"`
}

// ViewMode names the slices the view filter can produce.
type ViewMode string

const (
	ViewBrowse       ViewMode = "browse"
	ViewMineReported ViewMode = "mine-reported"
	ViewMineClaimed  ViewMode = "mine-claimed"
	ViewResolved     ViewMode = "resolved"
)

// ActionStatus tracks a submitted write through its lifecycle.
type ActionStatus string

const (
	ActionPending ActionStatus = "pending"
	ActionSettled ActionStatus = "settled"
	ActionFailed  ActionStatus = "failed"
)

// Action is the server-side record of one submitted transaction.
type Action struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Status      ActionStatus `json:"status"`
	TxHash      common.Hash  `json:"txHash"`
	Error       string       `json:"error,omitempty"`
	SubmittedAt time.Time    `json:"submittedAt"`
	SettledAt   *time.Time   `json:"settledAt,omitempty"`
}

// ReportRequest is the request body for relaying a reportLostItem call.
type ReportRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	BountyWei   *BigInt `json:"bountyWei"`
}

// ClaimRequest is the request body for relaying a claimItem call.
type ClaimRequest struct {
	ItemID  uint64 `json:"itemId"`
	Message string `json:"message"`
}

// CancelRequest is the request body for relaying a cancelItemReport call.
// Confirm must be true; cancellation is irreversible.
type CancelRequest struct {
	ItemID  uint64 `json:"itemId"`
	Confirm bool   `json:"confirm"`
}

// IncreaseRequest is the request body for relaying an increaseBounty call.
type IncreaseRequest struct {
	ItemID    uint64  `json:"itemId"`
	AmountWei *BigInt `json:"amountWei"`
}

// ConfirmFinderRequest is the request body for relaying a confirmFinder call.
type ConfirmFinderRequest struct {
	ItemID   uint64 `json:"itemId"`
	Claimant string `json:"claimant"`
}

// HealthStatus is the health check response.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime,omitempty"`
	Node    string `json:"node,omitempty"`
}
