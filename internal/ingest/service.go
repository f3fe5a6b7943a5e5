package ingest

import (
	"context"
	"time"

	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/internal/external/boxoffice"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// Service turns provider chart entries into catalog rows and weekly
// revenue facts
type Service struct {
	client  *boxoffice.Client
	movies  contracts.MovieRepository
	revenue contracts.RevenueRepository
	logger  *logger.Logger
}

// NewService creates the ingest service
func NewService(
	client *boxoffice.Client,
	movies contracts.MovieRepository,
	revenue contracts.RevenueRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		client:  client,
		movies:  movies,
		revenue: revenue,
		logger:  log,
	}
}

// IngestWeek fetches the provider chart for a week window and upserts the
// catalog and revenue facts. Re-ingesting the same week refreshes rows in
// place. Returns the number of facts written.
func (s *Service) IngestWeek(ctx context.Context, weekStart, weekEnd time.Time) (int, error) {
	entries, err := s.client.FetchWeeklyChart(ctx, weekStart)
	if err != nil {
		return 0, err
	}

	facts := make([]contracts.MovieWeeklyRevenue, 0, len(entries))
	for _, entry := range entries {
		movieID, err := s.movies.Upsert(ctx, &contracts.Movie{
			Title: entry.Title,
			Slug:  entry.Slug,
		})
		if err != nil {
			return 0, err
		}

		facts = append(facts, contracts.MovieWeeklyRevenue{
			MovieID:        movieID,
			WeekStart:      weekStart,
			WeekEnd:        weekEnd,
			DomesticGross:  entry.DomesticGross,
			WorldwideGross: entry.WorldwideGross,
		})
	}

	if err := s.revenue.SaveBatch(ctx, facts); err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"week_start": weekStart.Format("2006-01-02"),
		"facts":      len(facts),
	}).Info("Weekly revenue ingested")

	return len(facts), nil
}
