// Package league persists league and season configuration. CRUD beyond
// what scoring needs (reads plus the guarded start-date update) lives in
// the admin service upstream.
package league

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// Repository implements contracts.LeagueRepository and
// contracts.SeasonRepository
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a league/season repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID retrieves a league with its scoring configuration
func (r *Repository) GetByID(ctx context.Context, id contracts.LeagueID) (*contracts.League, error) {
	query := `
		SELECT id, name, slug, timezone, points_scheme, budget_cap, award_categories, created_at
		FROM leagues
		WHERE id = $1
	`

	var l contracts.League
	var schemeJSON, categoriesJSON []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Slug, &l.Timezone, &schemeJSON, &l.BudgetCap, &categoriesJSON, &l.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, contracts.NotFound("league %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}

	if err := json.Unmarshal(schemeJSON, &l.PointsScheme); err != nil {
		return nil, fmt.Errorf("failed to unmarshal points scheme: %w", err)
	}
	if err := json.Unmarshal(categoriesJSON, &l.AwardCategories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal award categories: %w", err)
	}

	return &l, nil
}

// GetSeasonByID retrieves a season
func (r *Repository) GetSeasonByID(ctx context.Context, id contracts.SeasonID) (*contracts.Season, error) {
	query := `
		SELECT id, league_id, name, start_date, end_date, week_count, active
		FROM seasons
		WHERE id = $1
	`

	var s contracts.Season
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.LeagueID, &s.Name, &s.StartDate, &s.EndDate, &s.WeekCount, &s.Active,
	)
	if err == pgx.ErrNoRows {
		return nil, contracts.NotFound("season %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return &s, nil
}

// ListActiveSeasons retrieves all active seasons across leagues
func (r *Repository) ListActiveSeasons(ctx context.Context) ([]contracts.Season, error) {
	query := `
		SELECT id, league_id, name, start_date, end_date, week_count, active
		FROM seasons
		WHERE active = true
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active seasons: %w", err)
	}
	defer rows.Close()

	var seasons []contracts.Season
	for rows.Next() {
		var s contracts.Season
		if err := rows.Scan(&s.ID, &s.LeagueID, &s.Name, &s.StartDate, &s.EndDate, &s.WeekCount, &s.Active); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// UpdateSeasonStartDate moves the week-zero anchor. Refused once any
// weekly snapshot exists: recomputed weeks would silently shift and
// reattribute history.
func (r *Repository) UpdateSeasonStartDate(ctx context.Context, id contracts.SeasonID, start time.Time) error {
	var computed bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM weekly_rankings WHERE season_id = $1)
	`, id).Scan(&computed)
	if err != nil {
		return fmt.Errorf("failed to check computed weeks: %w", err)
	}
	if computed {
		return contracts.Conflict("season %d already has computed weeks; start date is frozen", id)
	}

	tag, err := r.pool.Exec(ctx, `UPDATE seasons SET start_date = $1 WHERE id = $2`, start, id)
	if err != nil {
		return fmt.Errorf("failed to update start date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contracts.NotFound("season %d not found", id)
	}
	return nil
}

// seasonRepo adapts Repository to contracts.SeasonRepository, keeping the
// interface's method names without colliding with the league methods.
type seasonRepo struct {
	r *Repository
}

// Seasons returns the contracts.SeasonRepository view
func (r *Repository) Seasons() contracts.SeasonRepository {
	return seasonRepo{r: r}
}

func (s seasonRepo) GetByID(ctx context.Context, id contracts.SeasonID) (*contracts.Season, error) {
	return s.r.GetSeasonByID(ctx, id)
}

func (s seasonRepo) ListActive(ctx context.Context) ([]contracts.Season, error) {
	return s.r.ListActiveSeasons(ctx)
}

func (s seasonRepo) UpdateStartDate(ctx context.Context, id contracts.SeasonID, start time.Time) error {
	return s.r.UpdateSeasonStartDate(ctx, id, start)
}
