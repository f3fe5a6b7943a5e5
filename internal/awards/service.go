package awards

import (
	"context"
	"time"

	"github.com/reellords/studio-league/backend/internal/authz"
	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// Service grants category-based bonus points to the studio owning a movie.
// Bonuses are an independent point ledger: they are never folded into the
// weekly ranking points, and the standings surface exposes both figures.
type Service struct {
	leagues    contracts.LeagueRepository
	seasons    contracts.SeasonRepository
	ownerships contracts.OwnershipRepository
	awards     contracts.AwardRepository
	logger     *logger.Logger
	now        func() time.Time
}

// NewService creates the award service
func NewService(
	leagues contracts.LeagueRepository,
	seasons contracts.SeasonRepository,
	ownerships contracts.OwnershipRepository,
	awards contracts.AwardRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		leagues:    leagues,
		seasons:    seasons,
		ownerships: ownerships,
		awards:     awards,
		logger:     log,
		now:        time.Now,
	}
}

// ApplyRequest credits one award outcome for a movie
type ApplyRequest struct {
	SeasonID    contracts.SeasonID
	CategoryKey string
	MovieID     contracts.MovieID
	Result      contracts.AwardResult
}

// Apply resolves the category config and the movie's current owner, then
// persists the bonus. Idempotent per (season, studio, movie, category,
// result) tuple, not per call: the same movie may be credited once as a
// nomination and once later as a win, but a repeat of either is a Conflict.
func (s *Service) Apply(ctx context.Context, actor authz.Actor, req ApplyRequest) (*contracts.AwardBonus, error) {
	if !req.Result.Valid() {
		return nil, contracts.Invalid(`result must be "nom" or "win"`, "result")
	}
	if req.CategoryKey == "" {
		return nil, contracts.Invalid("category key is required", "categoryKey")
	}

	season, err := s.seasons.GetByID(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}

	if decision := authz.Authorize(actor, authz.ApplyAward(season.LeagueID)); !decision.Allowed {
		return nil, contracts.Forbidden("%s", decision.Reason)
	}

	league, err := s.leagues.GetByID(ctx, season.LeagueID)
	if err != nil {
		return nil, err
	}

	category, found := league.AwardCategoryByKey(req.CategoryKey)
	if !found {
		return nil, contracts.Invalid("unknown award category", "categoryKey")
	}
	if !category.Enabled {
		return nil, contracts.Invalid("award category is disabled", "categoryKey")
	}

	points := category.NominationPoints
	if req.Result == contracts.AwardWin {
		points = category.WinPoints
	}

	// Owner resolution is season-level, not week-scoped: the bonus goes to
	// whichever studio currently holds the movie.
	ownership, err := s.ownerships.ActiveByMovie(ctx, req.SeasonID, req.MovieID)
	if err != nil {
		return nil, err
	}

	bonus := &contracts.AwardBonus{
		LeagueID:    season.LeagueID,
		SeasonID:    req.SeasonID,
		StudioID:    ownership.StudioID,
		MovieID:     req.MovieID,
		CategoryKey: req.CategoryKey,
		Result:      req.Result,
		Points:      points,
		AwardedAt:   s.now().UTC(),
	}

	if err := s.awards.Insert(ctx, bonus); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"season_id": req.SeasonID,
		"studio_id": ownership.StudioID,
		"movie_id":  req.MovieID,
		"category":  req.CategoryKey,
		"result":    req.Result,
		"points":    points,
	}).Info("Award bonus applied")

	return bonus, nil
}

// SeasonBonuses lists all bonuses granted in a season
func (s *Service) SeasonBonuses(ctx context.Context, seasonID contracts.SeasonID) ([]contracts.AwardBonus, error) {
	if _, err := s.seasons.GetByID(ctx, seasonID); err != nil {
		return nil, err
	}
	return s.awards.ListBySeason(ctx, seasonID)
}
