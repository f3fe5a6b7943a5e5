package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute one scoring week for a season",
	Long: `Compute one scoring week for a season: aggregate per-studio revenue
over the week window, rank the studios and store the ranking snapshot.

Recomputing a week is safe; the snapshot is overwritten in place.

Example:
  go run ./cmd/league compute --season 1 --week 0`,
	RunE: runCompute,
}

var (
	computeSeasonID int64
	computeWeek     int
)

func init() {
	rootCmd.AddCommand(computeCmd)

	computeCmd.Flags().Int64Var(&computeSeasonID, "season", 0, "season ID (required)")
	computeCmd.Flags().IntVar(&computeWeek, "week", -1, "zero-based week index (required)")
	computeCmd.MarkFlagRequired("season")
	computeCmd.MarkFlagRequired("week")
}

func runCompute(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := app.scoring.ComputeWeek(ctx, contracts.SeasonID(computeSeasonID), computeWeek)
	if err != nil {
		return fmt.Errorf("compute week: %w", err)
	}

	fmt.Printf("Week %d computed for season %d\n", computeWeek, computeSeasonID)
	fmt.Printf("  Window:  %s .. %s\n",
		result.Window.WeekStart.Format(time.RFC3339),
		result.Window.WeekEnd.Format(time.RFC3339))
	fmt.Printf("  Studios: %d\n", result.StudiosUpdated)
	for _, row := range result.RankingRows {
		fmt.Printf("  #%d studio=%d points=%.1f revenue=%d\n",
			row.Rank, row.StudioID, row.Points, row.Revenue)
	}

	return nil
}
