// Package ingest populates the movie catalog and weekly revenue facts from
// the box-office provider. Scoring reads these tables and never writes them.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// MovieRepository implements contracts.MovieRepository
type MovieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository creates a movie repository
func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

// GetBySlug retrieves a movie by its provider chart slug
func (r *MovieRepository) GetBySlug(ctx context.Context, slug string) (*contracts.Movie, error) {
	query := `SELECT id, title, slug, COALESCE(release_date, '0001-01-01') FROM movies WHERE slug = $1`

	var m contracts.Movie
	err := r.pool.QueryRow(ctx, query, slug).Scan(&m.ID, &m.Title, &m.Slug, &m.ReleaseDate)
	if err == pgx.ErrNoRows {
		return nil, contracts.NotFound("movie %q not found", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return &m, nil
}

// Upsert inserts or refreshes a catalog entry, returning its id
func (r *MovieRepository) Upsert(ctx context.Context, movie *contracts.Movie) (contracts.MovieID, error) {
	query := `
		INSERT INTO movies (title, slug, release_date)
		VALUES ($1, $2, NULLIF($3, '0001-01-01'::date))
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title
		RETURNING id
	`

	var id contracts.MovieID
	err := r.pool.QueryRow(ctx, query, movie.Title, movie.Slug, movie.ReleaseDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert movie: %w", err)
	}

	movie.ID = id
	return id, nil
}

// RevenueRepository implements contracts.RevenueRepository
type RevenueRepository struct {
	pool *pgxpool.Pool
}

// NewRevenueRepository creates a revenue repository
func NewRevenueRepository(pool *pgxpool.Pool) *RevenueRepository {
	return &RevenueRepository{pool: pool}
}

// ListByWindow returns revenue rows whose week start falls within [from, to]
func (r *RevenueRepository) ListByWindow(ctx context.Context, from, to time.Time) ([]contracts.MovieWeeklyRevenue, error) {
	query := `
		SELECT movie_id, week_start, week_end, domestic_gross, worldwide_gross
		FROM movie_weekly_revenue
		WHERE week_start >= $1 AND week_start <= $2
		ORDER BY movie_id ASC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly revenue: %w", err)
	}
	defer rows.Close()

	var result []contracts.MovieWeeklyRevenue
	for rows.Next() {
		var rev contracts.MovieWeeklyRevenue
		if err := rows.Scan(&rev.MovieID, &rev.WeekStart, &rev.WeekEnd, &rev.DomesticGross, &rev.WorldwideGross); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	return result, rows.Err()
}

// SaveBatch upserts revenue facts keyed by (movie, week start), so
// re-ingesting a week refreshes rather than duplicates
func (r *RevenueRepository) SaveBatch(ctx context.Context, facts []contracts.MovieWeeklyRevenue) error {
	if len(facts) == 0 {
		return nil
	}

	query := `
		INSERT INTO movie_weekly_revenue (movie_id, week_start, week_end, domestic_gross, worldwide_gross)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (movie_id, week_start) DO UPDATE SET
			week_end = EXCLUDED.week_end,
			domestic_gross = EXCLUDED.domestic_gross,
			worldwide_gross = EXCLUDED.worldwide_gross
	`

	for _, fact := range facts {
		if _, err := r.pool.Exec(ctx, query,
			fact.MovieID, fact.WeekStart, fact.WeekEnd, fact.DomesticGross, fact.WorldwideGross,
		); err != nil {
			return fmt.Errorf("failed to save revenue for movie %d: %w", fact.MovieID, err)
		}
	}

	return nil
}
