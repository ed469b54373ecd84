package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RefreshWorker periodically rebuilds the aggregated item snapshot so reads
// served from the snapshot track chain state between explicit triggers.
type RefreshWorker struct {
	aggregator *AggregatorService
	logger     *zap.SugaredLogger
}

// NewRefreshWorker creates a new background refresh worker
func NewRefreshWorker(aggregator *AggregatorService, logger *zap.SugaredLogger) *RefreshWorker {
	return &RefreshWorker{aggregator: aggregator, logger: logger}
}

// Start begins the periodic refresh loop
func (w *RefreshWorker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial load
	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Refresh worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	loadCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	snap, err := w.aggregator.LoadAll(loadCtx)
	if err != nil {
		w.logger.Errorw("Snapshot refresh failed", "error", err)
		return
	}
	w.logger.Debugw("Snapshot refreshed", "items", len(snap.Items), "count", snap.ItemCount)
}
