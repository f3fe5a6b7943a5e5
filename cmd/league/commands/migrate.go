package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reellords/studio-league/backend/internal/database"
	"github.com/reellords/studio-league/backend/pkg/config"
	dbpkg "github.com/reellords/studio-league/backend/pkg/database"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Apply the embedded database schema.

The schema is idempotent: every statement uses IF NOT EXISTS, so running
migrate against an existing database is safe.

Example:
  go run ./cmd/league migrate`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := dbpkg.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db.Pool, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	fmt.Println("Schema applied")
	return nil
}
