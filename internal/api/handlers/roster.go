package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/internal/roster"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// RosterHandler handles ownership acquisition and retirement
type RosterHandler struct {
	roster *roster.Service
	logger *logger.Logger
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(svc *roster.Service, log *logger.Logger) *RosterHandler {
	return &RosterHandler{
		roster: svc,
		logger: log,
	}
}

// AcquireRequest is the acquire endpoint's request body
type AcquireRequest struct {
	StudioID      int64  `json:"studio_id"`
	MovieID       int64  `json:"movie_id"`
	PurchasePrice int64  `json:"purchase_price"`
	AcquiredAt    string `json:"acquired_at,omitempty"` // RFC 3339, defaults to now
}

// Acquire records a new movie ownership for a studio
// POST /api/seasons/{seasonID}/ownerships
func (h *RosterHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := seasonVar(w, r)
	if !ok {
		return
	}

	actor, err := actorFromRequest(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req AcquireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var acquiredAt time.Time
	if req.AcquiredAt != "" {
		acquiredAt, err = time.Parse(time.RFC3339, req.AcquiredAt)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid acquired_at (expected RFC 3339)")
			return
		}
	}

	ownership, err := h.roster.Acquire(r.Context(), actor, roster.AcquireRequest{
		SeasonID:      seasonID,
		StudioID:      contracts.StudioID(req.StudioID),
		MovieID:       contracts.MovieID(req.MovieID),
		PurchasePrice: req.PurchasePrice,
		AcquiredAt:    acquiredAt,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"season_id": seasonID,
		"studio_id": req.StudioID,
		"movie_id":  req.MovieID,
	}).Info("Movie acquired")

	respondJSON(w, http.StatusCreated, ownership)
}

// Retire ends an active ownership
// POST /api/ownerships/{ownershipID}/retire
func (h *RosterHandler) Retire(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["ownershipID"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid ownership id")
		return
	}

	actor, err := actorFromRequest(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	ownership, err := h.roster.Retire(r.Context(), actor, contracts.OwnershipID(id))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"ownership_id": id,
		"studio_id":    ownership.StudioID,
	}).Info("Movie retired")

	respondJSON(w, http.StatusOK, ownership)
}

// GetRoster lists a season's ownership ledger
// GET /api/seasons/{seasonID}/ownerships
func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := seasonVar(w, r)
	if !ok {
		return
	}

	ownerships, err := h.roster.SeasonRoster(r.Context(), seasonID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	page, limit := pageParams(r)
	respondJSON(w, http.StatusOK, paginate(ownerships, page, limit))
}
