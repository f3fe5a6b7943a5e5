package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reellords/studio-league/backend/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema. Statements are IF NOT EXISTS so the
// command is safe to re-run.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	log.Info("Applying database schema")

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info("Schema applied")
	return nil
}
