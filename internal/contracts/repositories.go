package contracts

import (
	"context"
	"time"
)

// Repository interfaces are defined here and implemented per domain
// package against pgx. Services depend on these, never on the pool.

// LeagueRepository manages league configuration rows
type LeagueRepository interface {
	GetByID(ctx context.Context, id LeagueID) (*League, error)
}

// SeasonRepository manages season rows
type SeasonRepository interface {
	GetByID(ctx context.Context, id SeasonID) (*Season, error)
	ListActive(ctx context.Context) ([]Season, error)
	// UpdateStartDate refuses with Conflict once any weekly snapshot exists
	// for the season; moving the week-zero anchor after scoring has run
	// would silently reattribute history.
	UpdateStartDate(ctx context.Context, id SeasonID, start time.Time) error
}

// StudioRepository manages studio rows
type StudioRepository interface {
	GetByID(ctx context.Context, id StudioID) (*Studio, error)
	ListByLeague(ctx context.Context, leagueID LeagueID) ([]Studio, error)
	// Create assigns a unique slug with a bounded suffix-increment retry
	// and fails with Conflict when the owner already has a studio in the
	// league.
	Create(ctx context.Context, studio *Studio) error
}

// OwnershipRepository manages the ownership ledger
type OwnershipRepository interface {
	// Insert fails with Conflict when any row, active or retired, already
	// exists for (season, movie).
	Insert(ctx context.Context, o *MovieOwnership) error
	GetByID(ctx context.Context, id OwnershipID) (*MovieOwnership, error)
	ListBySeason(ctx context.Context, seasonID SeasonID) ([]MovieOwnership, error)
	// ActiveByMovie returns the current unretired ownership of a movie, or
	// NotFound when the movie is unowned.
	ActiveByMovie(ctx context.Context, seasonID SeasonID, movieID MovieID) (*MovieOwnership, error)
	// Retire sets retiredAt on an active row; Conflict when already retired.
	Retire(ctx context.Context, id OwnershipID, at time.Time) error
}

// MovieRepository manages the shared movie catalog
type MovieRepository interface {
	GetBySlug(ctx context.Context, slug string) (*Movie, error)
	Upsert(ctx context.Context, movie *Movie) (MovieID, error)
}

// RevenueRepository manages weekly box-office facts
type RevenueRepository interface {
	// ListByWindow returns rows whose weekStart falls within [from, to].
	ListByWindow(ctx context.Context, from, to time.Time) ([]MovieWeeklyRevenue, error)
	SaveBatch(ctx context.Context, rows []MovieWeeklyRevenue) error
}

// SnapshotRepository manages the derived per-week records. Every write is a
// full-document upsert keyed by the natural uniqueness key, so recomputes
// are idempotent and concurrent writers degrade to last-writer-wins.
type SnapshotRepository interface {
	UpsertStudioWeek(ctx context.Context, row *StudioWeeklyRevenue) error
	ListStudioWeeks(ctx context.Context, seasonID SeasonID, weekIndex int) ([]StudioWeeklyRevenue, error)
	ReplaceRanking(ctx context.Context, ranking *WeeklyRanking) error
	GetRanking(ctx context.Context, seasonID SeasonID, weekIndex int) (*WeeklyRanking, error)
	HasAnyForSeason(ctx context.Context, seasonID SeasonID) (bool, error)
	// SeasonPointsByStudio sums weekly ranking points across all computed
	// weeks of the season.
	SeasonPointsByStudio(ctx context.Context, seasonID SeasonID) (map[StudioID]float64, error)
}

// AwardRepository manages the award bonus ledger
type AwardRepository interface {
	// Insert fails with Conflict when the exact
	// (season, studio, movie, category, result) tuple already exists.
	Insert(ctx context.Context, bonus *AwardBonus) error
	ListBySeason(ctx context.Context, seasonID SeasonID) ([]AwardBonus, error)
	SeasonPointsByStudio(ctx context.Context, seasonID SeasonID) (map[StudioID]int, error)
}
