package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/reellords/studio-league/backend/internal/awards"
	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// AwardsHandler handles award bonus endpoints
type AwardsHandler struct {
	awards *awards.Service
	logger *logger.Logger
}

// NewAwardsHandler creates a new awards handler
func NewAwardsHandler(svc *awards.Service, log *logger.Logger) *AwardsHandler {
	return &AwardsHandler{
		awards: svc,
		logger: log,
	}
}

// ApplyRequest is the award bonus endpoint's request body
type ApplyRequest struct {
	CategoryKey string `json:"category_key"`
	MovieID     int64  `json:"movie_id"`
	Result      string `json:"result"` // "nom" or "win"
}

// Apply credits an award bonus to the movie's owning studio
// POST /api/seasons/{seasonID}/awards
func (h *AwardsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := seasonVar(w, r)
	if !ok {
		return
	}

	actor, err := actorFromRequest(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bonus, err := h.awards.Apply(r.Context(), actor, awards.ApplyRequest{
		SeasonID:    seasonID,
		CategoryKey: req.CategoryKey,
		MovieID:     contracts.MovieID(req.MovieID),
		Result:      contracts.AwardResult(req.Result),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"season_id":    seasonID,
		"movie_id":     req.MovieID,
		"category_key": req.CategoryKey,
		"result":       req.Result,
	}).Info("Award bonus applied")

	respondJSON(w, http.StatusCreated, bonus)
}

// GetBonuses lists a season's award bonus ledger
// GET /api/seasons/{seasonID}/awards
func (h *AwardsHandler) GetBonuses(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := seasonVar(w, r)
	if !ok {
		return
	}

	bonuses, err := h.awards.SeasonBonuses(r.Context(), seasonID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	page, limit := pageParams(r)
	respondJSON(w, http.StatusOK, paginate(bonuses, page, limit))
}
