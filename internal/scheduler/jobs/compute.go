package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/internal/scoring"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// WeeklyComputeJob recomputes the just-closed scoring week for every
// active season. It calls the same compute entry point a commissioner
// would; failures on one season do not stop the others.
type WeeklyComputeJob struct {
	scoring *scoring.Service
	leagues contracts.LeagueRepository
	seasons contracts.SeasonRepository
	logger  *logger.Logger
}

// NewWeeklyComputeJob creates a weekly compute job
func NewWeeklyComputeJob(sc *scoring.Service, leagues contracts.LeagueRepository, seasons contracts.SeasonRepository, log *logger.Logger) *WeeklyComputeJob {
	return &WeeklyComputeJob{
		scoring: sc,
		leagues: leagues,
		seasons: seasons,
		logger:  log,
	}
}

// Name returns the job name
func (j *WeeklyComputeJob) Name() string {
	return "weekly_compute"
}

// Schedule runs Tuesday 08:00, after the ingest job has refreshed the
// closed week's numbers
func (j *WeeklyComputeJob) Schedule() string {
	return "0 0 8 * * TUE"
}

// Run computes the previous week for each active season
func (j *WeeklyComputeJob) Run(ctx context.Context) error {
	seasons, err := j.seasons.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active seasons: %w", err)
	}

	var failed int
	for _, season := range seasons {
		league, err := j.leagues.GetByID(ctx, season.LeagueID)
		if err != nil {
			j.logger.WithError(err).WithField("season_id", season.ID).Error("Failed to load league")
			failed++
			continue
		}

		loc, err := league.Location()
		if err != nil {
			j.logger.WithError(err).WithField("league_id", league.ID).Error("League has invalid timezone")
			failed++
			continue
		}

		// The week containing now just opened; the one before it closed.
		weekIndex := scoring.WeekIndexOf(season.StartDate, time.Now(), loc, scoring.DefaultAnchorWeekday) - 1
		if weekIndex < 0 {
			continue
		}
		if season.WeekCount > 0 && weekIndex >= season.WeekCount {
			continue
		}

		result, err := j.scoring.ComputeWeek(ctx, season.ID, weekIndex)
		if err != nil {
			j.logger.WithError(err).WithFields(map[string]interface{}{
				"season_id":  season.ID,
				"week_index": weekIndex,
			}).Error("Weekly compute failed")
			failed++
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"season_id":       season.ID,
			"week_index":      weekIndex,
			"studios_updated": result.StudiosUpdated,
		}).Info("Season week computed")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d seasons failed", failed, len(seasons))
	}
	return nil
}
