package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/reellords/studio-league/backend/internal/ingest"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// RevenueIngestJob pulls the weekly box office chart for the week that
// just closed and stores the per-movie revenue facts.
type RevenueIngestJob struct {
	ingest *ingest.Service
	logger *logger.Logger
}

// NewRevenueIngestJob creates a revenue ingest job
func NewRevenueIngestJob(svc *ingest.Service, log *logger.Logger) *RevenueIngestJob {
	return &RevenueIngestJob{
		ingest: svc,
		logger: log,
	}
}

// Name returns the job name
func (j *RevenueIngestJob) Name() string {
	return "revenue_ingest"
}

// Schedule runs Tuesday 06:00, before the weekly compute job
func (j *RevenueIngestJob) Schedule() string {
	return "0 0 6 * * TUE"
}

// Run ingests revenue for the most recent closed Tuesday-anchored week
func (j *RevenueIngestJob) Run(ctx context.Context) error {
	weekStart, weekEnd := closedWeek(time.Now().UTC())

	count, err := j.ingest.IngestWeek(ctx, weekStart, weekEnd)
	if err != nil {
		return fmt.Errorf("ingest week %s: %w", weekStart.Format("2006-01-02"), err)
	}

	j.logger.WithFields(map[string]interface{}{
		"week_start": weekStart.Format("2006-01-02"),
		"movies":     count,
	}).Info("Weekly revenue ingested")
	return nil
}

// closedWeek returns the bounds of the last fully elapsed
// Tuesday-to-Monday week before t.
func closedWeek(t time.Time) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	for day.Weekday() != time.Tuesday {
		day = day.AddDate(0, 0, -1)
	}
	weekStart := day.AddDate(0, 0, -7)
	weekEnd := day.Add(-time.Millisecond)
	return weekStart, weekEnd
}
