package roster

import (
	"context"
	"time"

	"github.com/reellords/studio-league/backend/internal/authz"
	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// Service is the ownership ledger. State machine per (season, movie):
// Unowned -> Owned -> Retired. Acquire requires that no row at all exists
// for the pair, active or retired; a movie is ownable at most once per
// season. Retire is terminal. Rows are never deleted, so week snapshots
// computed later still see who held what and when.
type Service struct {
	leagues    contracts.LeagueRepository
	seasons    contracts.SeasonRepository
	studios    contracts.StudioRepository
	ownerships contracts.OwnershipRepository
	logger     *logger.Logger
	now        func() time.Time
}

// NewService creates the roster service
func NewService(
	leagues contracts.LeagueRepository,
	seasons contracts.SeasonRepository,
	studios contracts.StudioRepository,
	ownerships contracts.OwnershipRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		leagues:    leagues,
		seasons:    seasons,
		studios:    studios,
		ownerships: ownerships,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock overrides the time source; used by tests to pin the blackout
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AcquireRequest is one studio's attempt to buy a movie for a season
type AcquireRequest struct {
	SeasonID      contracts.SeasonID
	StudioID      contracts.StudioID
	MovieID       contracts.MovieID
	PurchasePrice int64
	AcquiredAt    time.Time // zero means now
}

// Acquire records a new ownership after authorization and blackout checks.
// Serialization of concurrent acquisitions for the same (season, movie) is
// delegated to the ledger's uniqueness constraint: the loser sees Conflict,
// never corrupted state.
func (s *Service) Acquire(ctx context.Context, actor authz.Actor, req AcquireRequest) (*contracts.MovieOwnership, error) {
	if req.PurchasePrice < 0 {
		return nil, contracts.Invalid("purchase price cannot be negative", "purchasePrice")
	}

	season, err := s.seasons.GetByID(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}

	studio, err := s.studios.GetByID(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}
	if studio.LeagueID != season.LeagueID {
		return nil, contracts.Invalid("studio does not belong to the season's league", "studioId")
	}

	if decision := authz.Authorize(actor, authz.MutateRoster(season.LeagueID, req.StudioID)); !decision.Allowed {
		return nil, contracts.Forbidden("%s", decision.Reason)
	}

	league, err := s.leagues.GetByID(ctx, season.LeagueID)
	if err != nil {
		return nil, err
	}
	loc, err := league.Location()
	if err != nil {
		return nil, contracts.Invalid("league has an invalid timezone", "timezone").WithCause(err)
	}

	if decision := CheckAcquisitionWindow(s.now(), loc); !decision.Allowed {
		return nil, contracts.WindowLocked(decision.Reason)
	}

	acquiredAt := req.AcquiredAt
	if acquiredAt.IsZero() {
		acquiredAt = s.now().UTC()
	}

	ownership := &contracts.MovieOwnership{
		LeagueID:      season.LeagueID,
		SeasonID:      req.SeasonID,
		StudioID:      req.StudioID,
		MovieID:       req.MovieID,
		PurchasePrice: req.PurchasePrice,
		AcquiredAt:    acquiredAt,
	}

	if err := s.ownerships.Insert(ctx, ownership); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"season_id": req.SeasonID,
		"studio_id": req.StudioID,
		"movie_id":  req.MovieID,
		"price":     req.PurchasePrice,
	}).Info("Movie acquired")

	return ownership, nil
}

// Retire ends an active ownership. The row must exist, still be active,
// and belong to the acting studio (or the actor must be a commissioner).
// Retirement is subject to the same blackout as acquisition.
func (s *Service) Retire(ctx context.Context, actor authz.Actor, ownershipID contracts.OwnershipID) (*contracts.MovieOwnership, error) {
	ownership, err := s.ownerships.GetByID(ctx, ownershipID)
	if err != nil {
		return nil, err
	}
	if !ownership.Active() {
		return nil, contracts.Conflict("ownership %d is already retired", ownershipID)
	}

	if decision := authz.Authorize(actor, authz.MutateRoster(ownership.LeagueID, ownership.StudioID)); !decision.Allowed {
		return nil, contracts.Forbidden("%s", decision.Reason)
	}

	league, err := s.leagues.GetByID(ctx, ownership.LeagueID)
	if err != nil {
		return nil, err
	}
	loc, err := league.Location()
	if err != nil {
		return nil, contracts.Invalid("league has an invalid timezone", "timezone").WithCause(err)
	}

	if decision := CheckAcquisitionWindow(s.now(), loc); !decision.Allowed {
		return nil, contracts.WindowLocked(decision.Reason)
	}

	retiredAt := s.now().UTC()
	if err := s.ownerships.Retire(ctx, ownershipID, retiredAt); err != nil {
		return nil, err
	}

	ownership.RetiredAt = &retiredAt

	s.logger.WithFields(map[string]interface{}{
		"ownership_id": ownershipID,
		"studio_id":    ownership.StudioID,
		"movie_id":     ownership.MovieID,
	}).Info("Ownership retired")

	return ownership, nil
}

// SeasonRoster lists the season's full ownership ledger, retired rows
// included
func (s *Service) SeasonRoster(ctx context.Context, seasonID contracts.SeasonID) ([]contracts.MovieOwnership, error) {
	if _, err := s.seasons.GetByID(ctx, seasonID); err != nil {
		return nil, err
	}
	return s.ownerships.ListBySeason(ctx, seasonID)
}
