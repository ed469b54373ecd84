package services

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// stubLedger is a minimal in-memory LedgerReader for tests.
type stubLedger struct {
	mu    sync.Mutex
	calls int

	count      uint64
	countErr   error
	items      map[uint64]models.Item
	itemErr    map[uint64]error
	claimants  map[uint64][]common.Address
	messages   map[uint64]map[common.Address]string
	msgErr     map[uint64]map[common.Address]error
	profiles   map[common.Address]models.UserProfile
	profileErr error
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		items:     make(map[uint64]models.Item),
		itemErr:   make(map[uint64]error),
		claimants: make(map[uint64][]common.Address),
		messages:  make(map[uint64]map[common.Address]string),
		msgErr:    make(map[uint64]map[common.Address]error),
		profiles:  make(map[common.Address]models.UserProfile),
	}
}

func (s *stubLedger) record() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

func (s *stubLedger) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubLedger) addItem(item models.Item) {
	s.items[item.ID] = item
	if item.ID > s.count {
		s.count = item.ID
	}
}

func (s *stubLedger) addClaim(id uint64, claimant common.Address, message string) {
	s.claimants[id] = append(s.claimants[id], claimant)
	if s.messages[id] == nil {
		s.messages[id] = make(map[common.Address]string)
	}
	s.messages[id][claimant] = message
}

func (s *stubLedger) ItemCount(_ context.Context) (uint64, error) {
	s.record()
	return s.count, s.countErr
}

func (s *stubLedger) Item(_ context.Context, id uint64) (models.Item, error) {
	s.record()
	if err := s.itemErr[id]; err != nil {
		return models.Item{}, err
	}
	item, ok := s.items[id]
	if !ok {
		return models.Item{}, errors.New("execution reverted")
	}
	return item, nil
}

func (s *stubLedger) Claimants(_ context.Context, id uint64) ([]common.Address, error) {
	s.record()
	return s.claimants[id], nil
}

func (s *stubLedger) ClaimMessage(_ context.Context, id uint64, claimant common.Address) (string, error) {
	s.record()
	if err := s.msgErr[id][claimant]; err != nil {
		return "", err
	}
	return s.messages[id][claimant], nil
}

func (s *stubLedger) UserProfile(_ context.Context, addr common.Address) (models.UserProfile, error) {
	s.record()
	if s.profileErr != nil {
		return models.UserProfile{}, s.profileErr
	}
	return s.profiles[addr], nil
}

// stubWriter is a minimal LedgerWriter for tests. Every write succeeds and
// settles immediately unless an error is injected.
type stubWriter struct {
	mu         sync.Mutex
	submits    int
	submitErr  error
	settleErr  error
	lastMethod string
}

func (s *stubWriter) submit(method string) (common.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return common.Hash{}, s.submitErr
	}
	s.submits++
	s.lastMethod = method
	return common.HexToHash("0xdeadbeef"), nil
}

func (s *stubWriter) submitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submits
}

func (s *stubWriter) ReportLostItem(_ context.Context, _, _, _, _, _ string, _ *big.Int) (common.Hash, error) {
	return s.submit("reportLostItem")
}

func (s *stubWriter) ClaimItem(_ context.Context, _ uint64, _ string) (common.Hash, error) {
	return s.submit("claimItem")
}

func (s *stubWriter) ConfirmFinder(_ context.Context, _ uint64, _ common.Address) (common.Hash, error) {
	return s.submit("confirmFinder")
}

func (s *stubWriter) CancelItemReport(_ context.Context, _ uint64) (common.Hash, error) {
	return s.submit("cancelItemReport")
}

func (s *stubWriter) IncreaseBounty(_ context.Context, _ uint64, _ *big.Int) (common.Hash, error) {
	return s.submit("increaseBounty")
}

func (s *stubWriter) WaitSettled(_ context.Context, _ common.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settleErr
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func addr(n byte) common.Address {
	return common.BytesToAddress([]byte{n})
}

func wei(v int64) *models.BigInt {
	return models.NewBigInt(big.NewInt(v))
}

func testItem(id uint64, owner common.Address, bounty int64) models.Item {
	return models.Item{
		ID:           id,
		Owner:        owner,
		Title:        "Lost keys",
		Description:  "Set of house keys",
		Location:     "Central Park",
		Category:     "Keys",
		BountyAmount: wei(bounty),
		CreatedAt:    1700000000,
	}
}
