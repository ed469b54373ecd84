package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/models"
)

var startTime = time.Now()

// NodePinger checks reachability of the upstream RPC node.
type NodePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints
type HealthHandler struct {
	node   NodePinger
	logger *zap.SugaredLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(node NodePinger, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{node: node, logger: logger}
}

// Check handles GET /api/health (liveness probe)
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:  "ok",
		Version: "1.2.0",
		Uptime:  time.Since(startTime).String(),
	})
}

// Ready handles GET /api/health/ready (readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.node.Ping(r.Context()); err != nil {
		h.logger.Warnw("RPC node unreachable", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, models.HealthStatus{
			Status:  "not ready",
			Version: "1.2.0",
			Node:    "disconnected",
		})
		return
	}

	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:  "ready",
		Version: "1.2.0",
		Uptime:  time.Since(startTime).String(),
		Node:    "connected",
	})
}
