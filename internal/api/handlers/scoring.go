package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/reellords/studio-league/backend/internal/authz"
	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/internal/scoring"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// ScoringHandler handles weekly compute and readout endpoints
type ScoringHandler struct {
	scoring *scoring.Service
	seasons contracts.SeasonRepository
	logger  *logger.Logger
}

// NewScoringHandler creates a new scoring handler
func NewScoringHandler(svc *scoring.Service, seasons contracts.SeasonRepository, log *logger.Logger) *ScoringHandler {
	return &ScoringHandler{
		scoring: svc,
		seasons: seasons,
		logger:  log,
	}
}

// ComputeWeek triggers scoring for one season week
// POST /api/seasons/{seasonID}/weeks/{weekIndex}/compute
func (h *ScoringHandler) ComputeWeek(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	seasonID, weekIndex, ok := seasonWeekVars(w, r)
	if !ok {
		return
	}

	actor, err := actorFromRequest(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	season, err := h.seasons.GetByID(ctx, seasonID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if d := authz.Authorize(actor, authz.ComputeWeek(season.LeagueID)); !d.Allowed {
		respondDomainError(w, contracts.Forbidden("%s", d.Reason))
		return
	}

	result, err := h.scoring.ComputeWeek(ctx, seasonID, weekIndex)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"season_id":  seasonID,
			"week_index": weekIndex,
		}).Error("Weekly compute failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetTotals returns per-studio revenue totals for one week
// GET /api/seasons/{seasonID}/weeks/{weekIndex}/totals
func (h *ScoringHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	seasonID, weekIndex, ok := seasonWeekVars(w, r)
	if !ok {
		return
	}

	totals, err := h.scoring.StudioWeeklyTotals(r.Context(), seasonID, weekIndex)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	page, limit := pageParams(r)
	respondJSON(w, http.StatusOK, paginate(totals, page, limit))
}

// GetRanking returns the stored ranking for one week
// GET /api/seasons/{seasonID}/weeks/{weekIndex}/ranking
func (h *ScoringHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	seasonID, weekIndex, ok := seasonWeekVars(w, r)
	if !ok {
		return
	}

	ranking, err := h.scoring.WeeklyRanking(r.Context(), seasonID, weekIndex)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ranking)
}

// GetStandings returns season-to-date weekly and award points per studio
// GET /api/seasons/{seasonID}/standings
func (h *ScoringHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := seasonVar(w, r)
	if !ok {
		return
	}

	standings, err := h.scoring.SeasonStandings(r.Context(), seasonID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	page, limit := pageParams(r)
	respondJSON(w, http.StatusOK, paginate(standings, page, limit))
}

// Path and query helpers shared by the handlers.

func seasonVar(w http.ResponseWriter, r *http.Request) (contracts.SeasonID, bool) {
	raw := mux.Vars(r)["seasonID"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid season id")
		return 0, false
	}
	return contracts.SeasonID(id), true
}

func seasonWeekVars(w http.ResponseWriter, r *http.Request) (contracts.SeasonID, int, bool) {
	seasonID, ok := seasonVar(w, r)
	if !ok {
		return 0, 0, false
	}

	weekIndex, err := strconv.Atoi(mux.Vars(r)["weekIndex"])
	if err != nil || weekIndex < 0 {
		respondError(w, http.StatusBadRequest, "invalid week index")
		return 0, 0, false
	}
	return seasonID, weekIndex, true
}

func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) listResponse {
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return listResponse{Data: items[start:end], Page: page, Limit: limit, Total: total}
}
