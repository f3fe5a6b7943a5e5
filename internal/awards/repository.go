package awards

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/internal/database"
)

// Repository implements contracts.AwardRepository
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an award repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a bonus. The tuple uniqueness constraint turns a repeat
// grant into a Conflict instead of a duplicate row.
func (r *Repository) Insert(ctx context.Context, bonus *contracts.AwardBonus) error {
	query := `
		INSERT INTO award_bonuses (league_id, season_id, studio_id, movie_id, category_key, result, points, awarded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		bonus.LeagueID, bonus.SeasonID, bonus.StudioID, bonus.MovieID,
		bonus.CategoryKey, bonus.Result, bonus.Points, bonus.AwardedAt,
	).Scan(&bonus.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return contracts.Conflict("bonus for movie %d in category %q (%s) already granted",
				bonus.MovieID, bonus.CategoryKey, bonus.Result)
		}
		return fmt.Errorf("failed to insert award bonus: %w", err)
	}

	return nil
}

// ListBySeason retrieves all bonuses granted in a season
func (r *Repository) ListBySeason(ctx context.Context, seasonID contracts.SeasonID) ([]contracts.AwardBonus, error) {
	query := `
		SELECT id, league_id, season_id, studio_id, movie_id, category_key, result, points, awarded_at
		FROM award_bonuses
		WHERE season_id = $1
		ORDER BY awarded_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list award bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []contracts.AwardBonus
	for rows.Next() {
		var b contracts.AwardBonus
		if err := rows.Scan(
			&b.ID, &b.LeagueID, &b.SeasonID, &b.StudioID, &b.MovieID,
			&b.CategoryKey, &b.Result, &b.Points, &b.AwardedAt,
		); err != nil {
			return nil, err
		}
		bonuses = append(bonuses, b)
	}
	return bonuses, rows.Err()
}

// SeasonPointsByStudio sums award points per studio for a season
func (r *Repository) SeasonPointsByStudio(ctx context.Context, seasonID contracts.SeasonID) (map[contracts.StudioID]int, error) {
	query := `
		SELECT studio_id, COALESCE(SUM(points), 0)
		FROM award_bonuses
		WHERE season_id = $1
		GROUP BY studio_id
	`

	rows, err := r.pool.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum award points: %w", err)
	}
	defer rows.Close()

	totals := make(map[contracts.StudioID]int)
	for rows.Next() {
		var studioID contracts.StudioID
		var points int
		if err := rows.Scan(&studioID, &points); err != nil {
			return nil, err
		}
		totals[studioID] = points
	}
	return totals, rows.Err()
}
