package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// SnapshotRepository implements contracts.SnapshotRepository. Every write
// is an ON CONFLICT DO UPDATE on the row's natural key, so recomputation
// is idempotent and concurrent recomputes settle as last-writer-wins.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a snapshot repository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// UpsertStudioWeek fully overwrites one studio's totals for a week
func (r *SnapshotRepository) UpsertStudioWeek(ctx context.Context, row *contracts.StudioWeeklyRevenue) error {
	query := `
		INSERT INTO studio_weekly_revenue (
			league_id, season_id, studio_id, week_index, week_start, week_end,
			total_domestic_gross, total_worldwide_gross
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (season_id, week_index, studio_id) DO UPDATE SET
			league_id = EXCLUDED.league_id,
			week_start = EXCLUDED.week_start,
			week_end = EXCLUDED.week_end,
			total_domestic_gross = EXCLUDED.total_domestic_gross,
			total_worldwide_gross = EXCLUDED.total_worldwide_gross
	`

	_, err := r.pool.Exec(ctx, query,
		row.LeagueID, row.SeasonID, row.StudioID, row.WeekIndex,
		row.WeekStart, row.WeekEnd, row.TotalDomesticGross, row.TotalWorldwideGross,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert studio week: %w", err)
	}

	return nil
}

// ListStudioWeeks retrieves all studio totals for a week
func (r *SnapshotRepository) ListStudioWeeks(ctx context.Context, seasonID contracts.SeasonID, weekIndex int) ([]contracts.StudioWeeklyRevenue, error) {
	query := `
		SELECT league_id, season_id, studio_id, week_index, week_start, week_end,
		       total_domestic_gross, total_worldwide_gross
		FROM studio_weekly_revenue
		WHERE season_id = $1 AND week_index = $2
		ORDER BY total_worldwide_gross DESC, studio_id ASC
	`

	rows, err := r.pool.Query(ctx, query, seasonID, weekIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to list studio weeks: %w", err)
	}
	defer rows.Close()

	var result []contracts.StudioWeeklyRevenue
	for rows.Next() {
		var row contracts.StudioWeeklyRevenue
		if err := rows.Scan(
			&row.LeagueID, &row.SeasonID, &row.StudioID, &row.WeekIndex,
			&row.WeekStart, &row.WeekEnd, &row.TotalDomesticGross, &row.TotalWorldwideGross,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ReplaceRanking fully replaces the ranking row for (season, week)
func (r *SnapshotRepository) ReplaceRanking(ctx context.Context, ranking *contracts.WeeklyRanking) error {
	rowsJSON, err := json.Marshal(ranking.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal ranking rows: %w", err)
	}

	query := `
		INSERT INTO weekly_rankings (league_id, season_id, week_index, computed_at, rows)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (season_id, week_index) DO UPDATE SET
			league_id = EXCLUDED.league_id,
			computed_at = EXCLUDED.computed_at,
			rows = EXCLUDED.rows
	`

	_, err = r.pool.Exec(ctx, query,
		ranking.LeagueID, ranking.SeasonID, ranking.WeekIndex, ranking.ComputedAt, rowsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to replace ranking: %w", err)
	}

	return nil
}

// GetRanking retrieves the ranking for (season, week)
func (r *SnapshotRepository) GetRanking(ctx context.Context, seasonID contracts.SeasonID, weekIndex int) (*contracts.WeeklyRanking, error) {
	query := `
		SELECT league_id, season_id, week_index, computed_at, rows
		FROM weekly_rankings
		WHERE season_id = $1 AND week_index = $2
	`

	var ranking contracts.WeeklyRanking
	var rowsJSON []byte

	err := r.pool.QueryRow(ctx, query, seasonID, weekIndex).Scan(
		&ranking.LeagueID, &ranking.SeasonID, &ranking.WeekIndex, &ranking.ComputedAt, &rowsJSON,
	)
	if err == pgx.ErrNoRows {
		return nil, contracts.NotFound("no ranking computed for season %d week %d", seasonID, weekIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}

	if err := json.Unmarshal(rowsJSON, &ranking.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranking rows: %w", err)
	}

	return &ranking, nil
}

// HasAnyForSeason reports whether any weekly snapshot exists for a season
func (r *SnapshotRepository) HasAnyForSeason(ctx context.Context, seasonID contracts.SeasonID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM weekly_rankings WHERE season_id = $1)
	`, seasonID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check season snapshots: %w", err)
	}
	return exists, nil
}

// SeasonPointsByStudio sums weekly ranking points per studio over every
// computed week of the season
func (r *SnapshotRepository) SeasonPointsByStudio(ctx context.Context, seasonID contracts.SeasonID) (map[contracts.StudioID]float64, error) {
	query := `
		SELECT (row->>'studio_id')::bigint, SUM((row->>'points')::float8)
		FROM weekly_rankings, jsonb_array_elements(rows) AS row
		WHERE season_id = $1
		GROUP BY 1
	`

	rows, err := r.pool.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum season points: %w", err)
	}
	defer rows.Close()

	totals := make(map[contracts.StudioID]float64)
	for rows.Next() {
		var studioID contracts.StudioID
		var points float64
		if err := rows.Scan(&studioID, &points); err != nil {
			return nil, err
		}
		totals[studioID] = points
	}
	return totals, rows.Err()
}
