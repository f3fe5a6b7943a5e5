package roster

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/internal/database"
)

// slugRetryLimit bounds the optimistic-concurrency loop for studio slugs
const slugRetryLimit = 5

// StudioRepository implements contracts.StudioRepository
type StudioRepository struct {
	pool *pgxpool.Pool
}

// NewStudioRepository creates a studio repository
func NewStudioRepository(pool *pgxpool.Pool) *StudioRepository {
	return &StudioRepository{pool: pool}
}

// GetByID retrieves a studio
func (r *StudioRepository) GetByID(ctx context.Context, id contracts.StudioID) (*contracts.Studio, error) {
	query := `
		SELECT id, league_id, owner_user_id, name, slug, created_at
		FROM studios
		WHERE id = $1
	`

	var s contracts.Studio
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.LeagueID, &s.OwnerUserID, &s.Name, &s.Slug, &s.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, contracts.NotFound("studio %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get studio: %w", err)
	}

	return &s, nil
}

// ListByLeague retrieves all studios in a league
func (r *StudioRepository) ListByLeague(ctx context.Context, leagueID contracts.LeagueID) ([]contracts.Studio, error) {
	query := `
		SELECT id, league_id, owner_user_id, name, slug, created_at
		FROM studios
		WHERE league_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list studios: %w", err)
	}
	defer rows.Close()

	var studios []contracts.Studio
	for rows.Next() {
		var s contracts.Studio
		if err := rows.Scan(&s.ID, &s.LeagueID, &s.OwnerUserID, &s.Name, &s.Slug, &s.CreatedAt); err != nil {
			return nil, err
		}
		studios = append(studios, s)
	}
	return studios, rows.Err()
}

// Create inserts a studio, assigning a unique slug with a bounded
// suffix-increment retry: compute the candidate, attempt the insert, on a
// slug collision append -2, -3, ... up to the retry limit, then fail
// explicitly. A duplicate owner (one studio per user per league) is a
// Conflict immediately, not a retry.
func (r *StudioRepository) Create(ctx context.Context, studio *contracts.Studio) error {
	base := Slugify(studio.Name)

	query := `
		INSERT INTO studios (league_id, owner_user_id, name, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	for attempt := 1; attempt <= slugRetryLimit; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		err := r.pool.QueryRow(ctx, query,
			studio.LeagueID, studio.OwnerUserID, studio.Name, candidate,
		).Scan(&studio.ID, &studio.CreatedAt)
		if err == nil {
			studio.Slug = candidate
			return nil
		}
		if !database.IsUniqueViolation(err) {
			return fmt.Errorf("failed to create studio: %w", err)
		}

		// Owner uniqueness can never be resolved by a different slug
		if ownerTaken, checkErr := r.ownerHasStudio(ctx, studio.LeagueID, studio.OwnerUserID); checkErr == nil && ownerTaken {
			return contracts.Conflict("user %d already has a studio in league %d", studio.OwnerUserID, studio.LeagueID)
		}
	}

	return contracts.Conflict("could not assign a unique slug for %q after %d attempts", studio.Name, slugRetryLimit)
}

func (r *StudioRepository) ownerHasStudio(ctx context.Context, leagueID contracts.LeagueID, ownerID contracts.UserID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM studios WHERE league_id = $1 AND owner_user_id = $2)
	`, leagueID, ownerID).Scan(&exists)
	return exists, err
}

// Slugify lowercases a name and collapses non-alphanumerics to hyphens
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// OwnershipRepository implements contracts.OwnershipRepository
type OwnershipRepository struct {
	pool *pgxpool.Pool
}

// NewOwnershipRepository creates an ownership repository
func NewOwnershipRepository(pool *pgxpool.Pool) *OwnershipRepository {
	return &OwnershipRepository{pool: pool}
}

const ownershipColumns = `id, league_id, season_id, studio_id, movie_id, purchase_price, acquired_at, retired_at, refund_applied`

// Insert records a new ownership. The (season_id, movie_id) uniqueness
// constraint serializes concurrent acquisitions: the loser gets Conflict.
func (r *OwnershipRepository) Insert(ctx context.Context, o *contracts.MovieOwnership) error {
	query := `
		INSERT INTO movie_ownerships (league_id, season_id, studio_id, movie_id, purchase_price, acquired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		o.LeagueID, o.SeasonID, o.StudioID, o.MovieID, o.PurchasePrice, o.AcquiredAt,
	).Scan(&o.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return contracts.Conflict("movie %d has already been owned in season %d", o.MovieID, o.SeasonID)
		}
		return fmt.Errorf("failed to insert ownership: %w", err)
	}

	return nil
}

// GetByID retrieves an ownership row
func (r *OwnershipRepository) GetByID(ctx context.Context, id contracts.OwnershipID) (*contracts.MovieOwnership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM movie_ownerships WHERE id = $1`

	o, err := scanOwnership(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, contracts.NotFound("ownership %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership: %w", err)
	}
	return o, nil
}

// ListBySeason retrieves the full season ledger, retired rows included
func (r *OwnershipRepository) ListBySeason(ctx context.Context, seasonID contracts.SeasonID) ([]contracts.MovieOwnership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM movie_ownerships WHERE season_id = $1 ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ownerships: %w", err)
	}
	defer rows.Close()

	var ownerships []contracts.MovieOwnership
	for rows.Next() {
		o, err := scanOwnership(rows)
		if err != nil {
			return nil, err
		}
		ownerships = append(ownerships, *o)
	}
	return ownerships, rows.Err()
}

// ActiveByMovie returns the current unretired ownership of a movie
func (r *OwnershipRepository) ActiveByMovie(ctx context.Context, seasonID contracts.SeasonID, movieID contracts.MovieID) (*contracts.MovieOwnership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM movie_ownerships WHERE season_id = $1 AND movie_id = $2 AND retired_at IS NULL`

	o, err := scanOwnership(r.pool.QueryRow(ctx, query, seasonID, movieID))
	if err == pgx.ErrNoRows {
		return nil, contracts.NotFound("movie %d is not owned in season %d", movieID, seasonID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active ownership: %w", err)
	}
	return o, nil
}

// Retire sets retiredAt on an active row. Retiring an already-retired row
// is a Conflict; the WHERE clause makes the transition race-free.
func (r *OwnershipRepository) Retire(ctx context.Context, id contracts.OwnershipID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE movie_ownerships SET retired_at = $1
		WHERE id = $2 AND retired_at IS NULL
	`, at, id)
	if err != nil {
		return fmt.Errorf("failed to retire ownership: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movie_ownerships WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check ownership: %w", err)
		}
		if !exists {
			return contracts.NotFound("ownership %d not found", id)
		}
		return contracts.Conflict("ownership %d is already retired", id)
	}

	return nil
}

// rowScanner covers pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwnership(row rowScanner) (*contracts.MovieOwnership, error) {
	var o contracts.MovieOwnership
	err := row.Scan(
		&o.ID, &o.LeagueID, &o.SeasonID, &o.StudioID, &o.MovieID,
		&o.PurchasePrice, &o.AcquiredAt, &o.RetiredAt, &o.RefundApplied,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
