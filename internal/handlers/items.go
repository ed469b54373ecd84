// Package handlers contains HTTP request handlers for the lost & found API.
// Handlers parse requests, call services, and return JSON responses.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/models"
	"github.com/jirassssa/lostfound-server/internal/services"
)

// ItemHandler serves the aggregated item views: single items, the full
// collection, filtered slices, profiles, and the leaderboard.
type ItemHandler struct {
	aggregator *services.AggregatorService
	profileSvc *services.ProfileService
	feeBps     int64
	logger     *zap.SugaredLogger
}

// NewItemHandler creates a new item handler
func NewItemHandler(aggregator *services.AggregatorService, profileSvc *services.ProfileService, feeBps int64, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{aggregator: aggregator, profileSvc: profileSvc, feeBps: feeBps, logger: logger}
}

// Get handles GET /api/item/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, "Item ID required")
		return
	}

	item, err := h.aggregator.LoadOne(r.Context(), id)
	if err != nil {
		h.logger.Errorw("Failed to load item", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch item data")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Count handles GET /api/itemCount
func (h *ItemHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.aggregator.Count(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to read item counter", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch item count")
		return
	}
	respondJSON(w, http.StatusOK, map[string]uint64{"itemCount": count})
}

// All handles GET /api/items/all, a full fresh aggregation.
func (h *ItemHandler) All(w http.ResponseWriter, r *http.Request) {
	snap, err := h.aggregator.LoadAll(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to load items", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":     snap.Items,
		"itemCount": snap.ItemCount,
	})
}

// List handles GET /api/items?view=&address=, a named slice of the
// current snapshot.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	mode, err := services.ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var caller common.Address
	if addrStr := r.URL.Query().Get("address"); addrStr != "" {
		if !common.IsHexAddress(addrStr) {
			respondError(w, http.StatusBadRequest, "Invalid address")
			return
		}
		caller = common.HexToAddress(addrStr)
	} else if mode == models.ViewMineReported || mode == models.ViewMineClaimed {
		respondError(w, http.StatusBadRequest, "Address required for this view")
		return
	}

	snap, err := h.aggregator.Current(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to load items", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"view":     mode,
		"items":    services.FilterItems(snap.Items, mode, caller),
		"loadedAt": snap.LoadedAt,
	})
}

// Leaderboard handles GET /api/leaderboard
func (h *ItemHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.aggregator.Current(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to load items", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to build leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries":  services.BuildLeaderboard(snap.Items, h.feeBps),
		"loadedAt": snap.LoadedAt,
	})
}

// Profile handles GET /api/profile and GET /api/profile/{address}
func (h *ItemHandler) Profile(w http.ResponseWriter, r *http.Request) {
	addrStr := chi.URLParam(r, "address")
	if addrStr == "" {
		// No wallet connected: the profile is absent, not an error.
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if !common.IsHexAddress(addrStr) {
		respondError(w, http.StatusBadRequest, "Invalid address")
		return
	}

	profile, err := h.profileSvc.Load(r.Context(), common.HexToAddress(addrStr))
	if err != nil {
		h.logger.Errorw("Failed to load profile", "address", addrStr, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Helper: respond with JSON
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Helper: respond with error
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
