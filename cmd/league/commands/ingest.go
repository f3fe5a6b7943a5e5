package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest one week of box office revenue",
	Long: `Fetch the weekly box office chart from the configured provider and
upsert the movie catalog and revenue facts for that week.

The week runs from the given start date for seven days. Re-ingesting a
week refreshes the stored figures in place.

Example:
  go run ./cmd/league ingest --week-start 2024-01-02`,
	RunE: runIngest,
}

var ingestWeekStart string

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestWeekStart, "week-start", "", "week start date, YYYY-MM-DD (required)")
	ingestCmd.MarkFlagRequired("week-start")
}

func runIngest(cmd *cobra.Command, args []string) error {
	weekStart, err := time.Parse("2006-01-02", ingestWeekStart)
	if err != nil {
		return fmt.Errorf("invalid --week-start (expected YYYY-MM-DD): %w", err)
	}
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Millisecond)

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := app.ingest.IngestWeek(ctx, weekStart, weekEnd)
	if err != nil {
		return fmt.Errorf("ingest week: %w", err)
	}

	fmt.Printf("Ingested %d revenue facts for week starting %s\n", count, ingestWeekStart)
	return nil
}
