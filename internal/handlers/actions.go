package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jirassssa/lostfound-server/internal/models"
	"github.com/jirassssa/lostfound-server/internal/services"
)

// ActionHandler exposes the transaction relay: one endpoint per
// state-changing contract call, plus action status lookup.
type ActionHandler struct {
	svc    *services.ActionService
	logger *zap.SugaredLogger
}

// NewActionHandler creates a new action handler
func NewActionHandler(svc *services.ActionService, logger *zap.SugaredLogger) *ActionHandler {
	return &ActionHandler{svc: svc, logger: logger}
}

// Report handles POST /api/actions/report
func (h *ActionHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	act, err := h.svc.Report(&req)
	h.respond(w, act, err)
}

// Claim handles POST /api/actions/claim
func (h *ActionHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req models.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	act, err := h.svc.Claim(&req)
	h.respond(w, act, err)
}

// Cancel handles POST /api/actions/cancel
func (h *ActionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req models.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	act, err := h.svc.Cancel(&req)
	h.respond(w, act, err)
}

// Increase handles POST /api/actions/increase
func (h *ActionHandler) Increase(w http.ResponseWriter, r *http.Request) {
	var req models.IncreaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	act, err := h.svc.Increase(&req)
	h.respond(w, act, err)
}

// ConfirmFinder handles POST /api/actions/confirm-finder
func (h *ActionHandler) ConfirmFinder(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmFinderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	act, err := h.svc.ConfirmFinder(&req)
	h.respond(w, act, err)
}

// Get handles GET /api/actions/{id}
func (h *ActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	act, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Action not found")
		return
	}
	respondJSON(w, http.StatusOK, act)
}

func (h *ActionHandler) respond(w http.ResponseWriter, act models.Action, err error) {
	if err == nil {
		respondJSON(w, http.StatusAccepted, act)
		return
	}

	switch {
	case errors.Is(err, services.ErrRelayDisabled):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrBountyTooLow),
		errors.Is(err, services.ErrNotConfirmed),
		errors.Is(err, services.ErrInvalidAddress):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		// Ledger rejection: surfaced verbatim, never retried here.
		h.logger.Errorw("Action submission failed", "error", err)
		respondError(w, http.StatusBadGateway, err.Error())
	}
}
