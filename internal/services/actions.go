package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// Validation errors, caught before any RPC round trip.
var (
	ErrRelayDisabled  = errors.New("transaction relay is not configured")
	ErrMissingField   = errors.New("missing required field")
	ErrEmptyMessage   = errors.New("claim message is empty")
	ErrBountyTooLow   = errors.New("amount below configured minimum")
	ErrNotConfirmed   = errors.New("cancellation requires explicit confirmation")
	ErrInvalidAddress = errors.New("invalid address")
	ErrUnknownAction  = errors.New("unknown action id")
)

// ActionService validates and relays state-changing intents to the
// contract. Every submitted action moves through pending → settled | failed
// by polling its receipt; a settled write triggers an aggregator refresh.
// Failed or rejected writes are surfaced verbatim and never retried.
type ActionService struct {
	writer        LedgerWriter // nil disables the relay
	minBounty     *big.Int
	settleTimeout time.Duration
	onSettle      func()
	logger        *zap.SugaredLogger

	mu      sync.Mutex
	actions map[string]*models.Action
}

// NewActionService creates a new action service. onSettle runs after each
// successfully settled write.
func NewActionService(writer LedgerWriter, minBounty *big.Int, settleTimeout time.Duration, onSettle func(), logger *zap.SugaredLogger) *ActionService {
	return &ActionService{
		writer:        writer,
		minBounty:     minBounty,
		settleTimeout: settleTimeout,
		onSettle:      onSettle,
		logger:        logger,
		actions:       make(map[string]*models.Action),
	}
}

// Report validates and relays a reportLostItem call. The bounty rides as
// the transaction value and must meet the configured floor.
func (s *ActionService) Report(req *models.ReportRequest) (models.Action, error) {
	for field, value := range map[string]string{
		"title":       req.Title,
		"description": req.Description,
		"location":    req.Location,
		"category":    req.Category,
	} {
		if strings.TrimSpace(value) == "" {
			return models.Action{}, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	if req.BountyWei == nil || req.BountyWei.Cmp(s.minBounty) < 0 {
		return models.Action{}, fmt.Errorf("%w: minimum is %s wei", ErrBountyTooLow, s.minBounty)
	}

	bounty := new(big.Int).Set(&req.BountyWei.Int)
	return s.submit("report", func(ctx context.Context) (common.Hash, error) {
		return s.writer.ReportLostItem(ctx, req.Title, req.Description, req.ImageURL, req.Location, req.Category, bounty)
	})
}

// Claim validates and relays a claimItem call. A blank message is rejected
// locally.
func (s *ActionService) Claim(req *models.ClaimRequest) (models.Action, error) {
	if req.ItemID == 0 {
		return models.Action{}, fmt.Errorf("%w: itemId", ErrMissingField)
	}
	if strings.TrimSpace(req.Message) == "" {
		return models.Action{}, ErrEmptyMessage
	}

	return s.submit("claim", func(ctx context.Context) (common.Hash, error) {
		return s.writer.ClaimItem(ctx, req.ItemID, req.Message)
	})
}

// Cancel relays a cancelItemReport call. Cancellation is irreversible, so
// the request must carry an explicit confirmation flag.
func (s *ActionService) Cancel(req *models.CancelRequest) (models.Action, error) {
	if req.ItemID == 0 {
		return models.Action{}, fmt.Errorf("%w: itemId", ErrMissingField)
	}
	if !req.Confirm {
		return models.Action{}, ErrNotConfirmed
	}

	return s.submit("cancel", func(ctx context.Context) (common.Hash, error) {
		return s.writer.CancelItemReport(ctx, req.ItemID)
	})
}

// Increase relays an increaseBounty call; the increment must meet the same
// floor as an initial bounty.
func (s *ActionService) Increase(req *models.IncreaseRequest) (models.Action, error) {
	if req.ItemID == 0 {
		return models.Action{}, fmt.Errorf("%w: itemId", ErrMissingField)
	}
	if req.AmountWei == nil || req.AmountWei.Cmp(s.minBounty) < 0 {
		return models.Action{}, fmt.Errorf("%w: minimum is %s wei", ErrBountyTooLow, s.minBounty)
	}

	amount := new(big.Int).Set(&req.AmountWei.Int)
	return s.submit("increase-bounty", func(ctx context.Context) (common.Hash, error) {
		return s.writer.IncreaseBounty(ctx, req.ItemID, amount)
	})
}

// ConfirmFinder relays a confirmFinder call. The contract enforces that the
// caller owns the item; the exact claimant address is passed through.
func (s *ActionService) ConfirmFinder(req *models.ConfirmFinderRequest) (models.Action, error) {
	if req.ItemID == 0 {
		return models.Action{}, fmt.Errorf("%w: itemId", ErrMissingField)
	}
	if !common.IsHexAddress(req.Claimant) {
		return models.Action{}, fmt.Errorf("%w: %q", ErrInvalidAddress, req.Claimant)
	}
	claimant := common.HexToAddress(req.Claimant)

	return s.submit("confirm-finder", func(ctx context.Context) (common.Hash, error) {
		return s.writer.ConfirmFinder(ctx, req.ItemID, claimant)
	})
}

// Get returns a copy of the tracked action state.
func (s *ActionService) Get(id string) (models.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	act, ok := s.actions[id]
	if !ok {
		return models.Action{}, ErrUnknownAction
	}
	return *act, nil
}

// submit sends the transaction and starts a watcher that polls the receipt.
// The watcher runs on a background context: once a write is on the wire it
// cannot be retracted, so it is tracked to completion regardless of what
// happens to the initiating request.
func (s *ActionService) submit(kind string, send func(ctx context.Context) (common.Hash, error)) (models.Action, error) {
	if s.writer == nil {
		return models.Action{}, ErrRelayDisabled
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.settleTimeout)
	txHash, err := send(ctx)
	if err != nil {
		cancel()
		return models.Action{}, err
	}

	act := &models.Action{
		ID:          uuid.New().String(),
		Kind:        kind,
		Status:      models.ActionPending,
		TxHash:      txHash,
		SubmittedAt: time.Now(),
	}
	s.mu.Lock()
	s.actions[act.ID] = act
	snapshot := *act
	s.mu.Unlock()

	go s.watch(ctx, cancel, act)
	return snapshot, nil
}

func (s *ActionService) watch(ctx context.Context, cancel context.CancelFunc, act *models.Action) {
	defer cancel()

	err := s.writer.WaitSettled(ctx, act.TxHash)
	now := time.Now()

	s.mu.Lock()
	act.SettledAt = &now
	if err != nil {
		act.Status = models.ActionFailed
		act.Error = err.Error()
	} else {
		act.Status = models.ActionSettled
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warnw("Action failed", "id", act.ID, "kind", act.Kind, "tx", act.TxHash.Hex(), "error", err)
		return
	}

	s.logger.Infow("Action settled", "id", act.ID, "kind", act.Kind, "tx", act.TxHash.Hex())
	if s.onSettle != nil {
		s.onSettle()
	}
}
