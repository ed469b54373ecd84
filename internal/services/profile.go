package services

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// ProfileService fetches per-address reputation records from the contract.
type ProfileService struct {
	ledger LedgerReader
	logger *zap.SugaredLogger
}

// NewProfileService creates a new profile service
func NewProfileService(ledger LedgerReader, logger *zap.SugaredLogger) *ProfileService {
	return &ProfileService{ledger: ledger, logger: logger}
}

// Load fetches the profile for addr. The zero address means no wallet:
// the result is absent (nil, nil). The profile is atomic: a ledger error
// yields no partial result.
func (s *ProfileService) Load(ctx context.Context, addr common.Address) (*models.UserProfile, error) {
	if addr == (common.Address{}) {
		return nil, nil
	}

	profile, err := s.ledger.UserProfile(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &profile, nil
}
