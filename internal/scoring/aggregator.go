package scoring

import (
	"context"
	"time"

	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

// Aggregator joins per-movie weekly revenue facts with the ownership
// ledger into per-studio week totals.
type Aggregator struct {
	ownerships contracts.OwnershipRepository
	revenue    contracts.RevenueRepository
	snapshots  contracts.SnapshotRepository
	logger     *logger.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(
	ownerships contracts.OwnershipRepository,
	revenue contracts.RevenueRepository,
	snapshots contracts.SnapshotRepository,
	log *logger.Logger,
) *Aggregator {
	return &Aggregator{
		ownerships: ownerships,
		revenue:    revenue,
		snapshots:  snapshots,
		logger:     log,
	}
}

// studioTotals accumulates gross per studio, keyed by StudioID
type studioTotals struct {
	domestic  int64
	worldwide int64
}

// AggregateWeek computes and persists per-studio totals for one scoring
// window. Attribution uses the ownership active and overlapping the
// window, not whoever currently holds the movie; revenue for movies no
// studio held during the window is silently discarded. Each persisted row
// is a full overwrite keyed by (season, week, studio), so re-running for
// unchanged inputs writes identical rows.
func (a *Aggregator) AggregateWeek(ctx context.Context, season *contracts.Season, window Window) ([]contracts.StudioWeeklyRevenue, error) {
	ownerships, err := a.ownerships.ListBySeason(ctx, season.ID)
	if err != nil {
		return nil, err
	}

	owners := make(map[contracts.MovieID]contracts.StudioID, len(ownerships))
	for i := range ownerships {
		o := &ownerships[i]
		if o.OverlapsWeek(window.WeekStart, window.WeekEnd) {
			owners[o.MovieID] = o.StudioID
		}
	}

	facts, err := a.revenue.ListByWindow(ctx, window.WeekStart, window.WeekEnd)
	if err != nil {
		return nil, err
	}

	totals := make(map[contracts.StudioID]*studioTotals)
	skipped := 0
	for _, fact := range facts {
		studioID, ok := owners[fact.MovieID]
		if !ok {
			skipped++
			continue
		}

		t := totals[studioID]
		if t == nil {
			t = &studioTotals{}
			totals[studioID] = t
		}
		t.domestic += fact.DomesticGross
		t.worldwide += fact.WorldwideGross
	}

	rows := make([]contracts.StudioWeeklyRevenue, 0, len(totals))
	for studioID, t := range totals {
		row := contracts.StudioWeeklyRevenue{
			LeagueID:            season.LeagueID,
			SeasonID:            season.ID,
			StudioID:            studioID,
			WeekIndex:           window.WeekIndex,
			WeekStart:           window.WeekStart,
			WeekEnd:             window.WeekEnd,
			TotalDomesticGross:  t.domestic,
			TotalWorldwideGross: t.worldwide,
		}
		if err := a.snapshots.UpsertStudioWeek(ctx, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	a.logger.WithFields(map[string]interface{}{
		"season_id":       season.ID,
		"week_index":      window.WeekIndex,
		"week_start":      window.WeekStart.Format(time.RFC3339),
		"studios_updated": len(rows),
		"facts_skipped":   skipped,
	}).Info("Weekly revenue aggregated")

	return rows, nil
}
