package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jirassssa/lostfound-server/internal/models"
)

// AggregatorService reconstructs the full reported-item set from the
// contract. The contract exposes only simple getters and no batch API, so a
// full load costs O(items × claimants) round trips. Loads are sequential by
// default to stay friendly to public RPC endpoints; a concurrency above 1
// enables capped fan-out.
type AggregatorService struct {
	ledger      LedgerReader
	concurrency int
	logger      *zap.SugaredLogger

	mu       sync.RWMutex
	snapshot *models.Snapshot
	gen      atomic.Uint64
}

// NewAggregatorService creates a new aggregator service
func NewAggregatorService(ledger LedgerReader, concurrency int, logger *zap.SugaredLogger) *AggregatorService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AggregatorService{ledger: ledger, concurrency: concurrency, logger: logger}
}

// LoadAll reads itemCounter and then every item in [1, count], each
// enriched with its claimants and claim messages. A counter failure is
// fatal; a failure on any one item drops that item from the result and the
// load carries on with what it has. Items come back in
// ascending id order.
func (s *AggregatorService) LoadAll(ctx context.Context) (*models.Snapshot, error) {
	token := s.gen.Add(1)
	start := time.Now()

	count, err := s.ledger.ItemCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("item count: %w", err)
	}

	loaded := make([]*models.Item, count)
	if s.concurrency == 1 {
		for id := uint64(1); id <= count; id++ {
			item, err := s.assemble(ctx, id, false)
			if err != nil {
				s.logger.Warnw("Skipping item", "id", id, "error", err)
				continue
			}
			loaded[id-1] = item
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for id := uint64(1); id <= count; id++ {
			id := id
			g.Go(func() error {
				item, err := s.assemble(gctx, id, false)
				if err != nil {
					s.logger.Warnw("Skipping item", "id", id, "error", err)
					return nil
				}
				loaded[id-1] = item
				return nil
			})
		}
		_ = g.Wait()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, count)
	for _, it := range loaded {
		if it != nil {
			items = append(items, *it)
		}
	}

	snap := &models.Snapshot{
		Items:      items,
		ItemCount:  count,
		LoadedAt:   time.Now(),
		Generation: token,
	}
	s.publish(snap)

	s.logger.Infow("Item set loaded",
		"total", count,
		"loaded", len(items),
		"skipped", int(count)-len(items),
		"took", time.Since(start),
	)
	return snap, nil
}

// LoadOne reads a single item with its claims. Unlike the batch load, any
// read failure is fatal here: a single-entity query has no partial result.
func (s *AggregatorService) LoadOne(ctx context.Context, id uint64) (*models.Item, error) {
	return s.assemble(ctx, id, true)
}

// Count reads the current itemCounter value.
func (s *AggregatorService) Count(ctx context.Context) (uint64, error) {
	return s.ledger.ItemCount(ctx)
}

// Snapshot returns the most recently published snapshot, or nil before the
// first successful load.
func (s *AggregatorService) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Current returns the latest snapshot, performing an initial load if none
// has been published yet.
func (s *AggregatorService) Current(ctx context.Context) (*models.Snapshot, error) {
	if snap := s.Snapshot(); snap != nil {
		return snap, nil
	}
	return s.LoadAll(ctx)
}

// RefreshAsync triggers a background reload. Called after a write settles.
func (s *AggregatorService) RefreshAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.LoadAll(ctx); err != nil {
			s.logger.Errorw("Refresh after settle failed", "error", err)
		}
	}()
}

// assemble reads one item record plus its claimants and messages. In strict
// mode every read must succeed; otherwise an unreadable claim message drops
// just that message.
func (s *AggregatorService) assemble(ctx context.Context, id uint64, strict bool) (*models.Item, error) {
	item, err := s.ledger.Item(ctx, id)
	if err != nil {
		return nil, err
	}

	claimants, err := s.ledger.Claimants(ctx, id)
	if err != nil {
		return nil, err
	}

	messages := make(map[common.Address]string, len(claimants))
	for _, claimant := range claimants {
		msg, err := s.ledger.ClaimMessage(ctx, id, claimant)
		if err != nil {
			if strict {
				return nil, err
			}
			s.logger.Warnw("Claim message unavailable", "id", id, "claimant", claimant.Hex(), "error", err)
			continue
		}
		messages[claimant] = msg
	}

	item.Claimants = claimants
	item.ClaimMessages = messages
	return &item, nil
}

// publish installs snap unless a newer generation has already landed.
// Loads can complete out of order under fan-out or when a manual reload
// races the background worker; the generation token keeps a stale result
// from clobbering a fresher one.
func (s *AggregatorService) publish(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil && s.snapshot.Generation > snap.Generation {
		s.logger.Debugw("Discarding stale snapshot", "generation", snap.Generation, "current", s.snapshot.Generation)
		return
	}
	s.snapshot = snap
}
