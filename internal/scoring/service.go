package scoring

import (
	"context"
	"sort"
	"time"

	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/pkg/logger"
	"github.com/reellords/studio-league/backend/pkg/redis"
)

// Service runs the weekly scoring cycle. Every operation is a stateless,
// request-scoped computation; the compute trigger arrives from outside
// (commissioner action or the scheduler command). Concurrent recomputes of
// the same week are safe because every derived write is a full-document
// upsert on a natural key.
type Service struct {
	leagues    contracts.LeagueRepository
	seasons    contracts.SeasonRepository
	awards     contracts.AwardRepository
	snapshots  contracts.SnapshotRepository
	aggregator *Aggregator
	cache      *redis.Cache // nil when caching is disabled
	logger     *logger.Logger
	now        func() time.Time
}

// NewService creates the scoring service
func NewService(
	leagues contracts.LeagueRepository,
	seasons contracts.SeasonRepository,
	awards contracts.AwardRepository,
	snapshots contracts.SnapshotRepository,
	aggregator *Aggregator,
	cache *redis.Cache,
	log *logger.Logger,
) *Service {
	return &Service{
		leagues:    leagues,
		seasons:    seasons,
		awards:     awards,
		snapshots:  snapshots,
		aggregator: aggregator,
		cache:      cache,
		logger:     log,
		now:        time.Now,
	}
}

// ComputeResult is the outcome of one computeWeek run
type ComputeResult struct {
	Window         Window                 `json:"window"`
	StudiosUpdated int                    `json:"studios_updated"`
	RankingRows    []contracts.RankingRow `json:"ranking_rows"`
}

// ComputeWeek recomputes one scoring week end to end: window, per-studio
// totals, ranking. Idempotent for unchanged inputs; after an input change
// it overwrites the previous snapshot rather than merging. A mid-loop
// failure leaves already-written rows intact and is corrected by re-running.
func (s *Service) ComputeWeek(ctx context.Context, seasonID contracts.SeasonID, weekIndex int) (*ComputeResult, error) {
	season, league, loc, err := s.seasonContext(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	if season.WeekCount > 0 && weekIndex >= season.WeekCount {
		return nil, contracts.Invalid("week index beyond season length", "weekIndex")
	}

	window, err := WeekWindow(season.StartDate, weekIndex, loc, DefaultAnchorWeekday)
	if err != nil {
		return nil, err
	}

	totals, err := s.aggregator.AggregateWeek(ctx, season, window)
	if err != nil {
		return nil, err
	}

	rows := BuildRanking(totals, league.PointsScheme)

	ranking := &contracts.WeeklyRanking{
		LeagueID:   season.LeagueID,
		SeasonID:   season.ID,
		WeekIndex:  weekIndex,
		ComputedAt: s.now().UTC(),
		Rows:       rows,
	}
	if err := s.snapshots.ReplaceRanking(ctx, ranking); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, redis.RankingKey(int64(seasonID), weekIndex)); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate ranking cache")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"season_id":       seasonID,
		"week_index":      weekIndex,
		"studios_updated": len(totals),
		"ranked":          len(rows),
	}).Info("Week computed")

	return &ComputeResult{
		Window:         window,
		StudiosUpdated: len(totals),
		RankingRows:    rows,
	}, nil
}

// StudioWeeklyTotals returns the persisted per-studio totals for a week
func (s *Service) StudioWeeklyTotals(ctx context.Context, seasonID contracts.SeasonID, weekIndex int) ([]contracts.StudioWeeklyRevenue, error) {
	if weekIndex < 0 {
		return nil, contracts.Invalid("week index must be a non-negative integer", "weekIndex")
	}
	return s.snapshots.ListStudioWeeks(ctx, seasonID, weekIndex)
}

// WeeklyRanking returns the persisted ranking for a week, cache-first
func (s *Service) WeeklyRanking(ctx context.Context, seasonID contracts.SeasonID, weekIndex int) (*contracts.WeeklyRanking, error) {
	if weekIndex < 0 {
		return nil, contracts.Invalid("week index must be a non-negative integer", "weekIndex")
	}

	key := redis.RankingKey(int64(seasonID), weekIndex)
	if s.cache != nil {
		var cached contracts.WeeklyRanking
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	ranking, err := s.snapshots.GetRanking(ctx, seasonID, weekIndex)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, ranking, redis.TTLRanking); err != nil {
			s.logger.WithError(err).Warn("Failed to cache ranking")
		}
	}

	return ranking, nil
}

// StandingsRow is one studio's season-long position. Weekly ranking points
// and award points are reported side by side; whether they should be summed
// into a single figure is a league-policy question this system does not
// decide, so callers get both.
type StandingsRow struct {
	StudioID     contracts.StudioID `json:"studio_id"`
	WeeklyPoints float64            `json:"weekly_points"`
	AwardPoints  int                `json:"award_points"`
}

// SeasonStandings aggregates both point ledgers across all computed weeks
func (s *Service) SeasonStandings(ctx context.Context, seasonID contracts.SeasonID) ([]StandingsRow, error) {
	if _, err := s.seasons.GetByID(ctx, seasonID); err != nil {
		return nil, err
	}

	weekly, err := s.snapshots.SeasonPointsByStudio(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	awarded, err := s.awards.SeasonPointsByStudio(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	seen := make(map[contracts.StudioID]bool, len(weekly)+len(awarded))
	rows := make([]StandingsRow, 0, len(weekly)+len(awarded))
	for studioID, pts := range weekly {
		seen[studioID] = true
		rows = append(rows, StandingsRow{
			StudioID:     studioID,
			WeeklyPoints: pts,
			AwardPoints:  awarded[studioID],
		})
	}
	for studioID, pts := range awarded {
		if !seen[studioID] {
			rows = append(rows, StandingsRow{StudioID: studioID, AwardPoints: pts})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WeeklyPoints != rows[j].WeeklyPoints {
			return rows[i].WeeklyPoints > rows[j].WeeklyPoints
		}
		return rows[i].StudioID < rows[j].StudioID
	})

	return rows, nil
}

// seasonContext loads a season with its league and timezone
func (s *Service) seasonContext(ctx context.Context, seasonID contracts.SeasonID) (*contracts.Season, *contracts.League, *time.Location, error) {
	season, err := s.seasons.GetByID(ctx, seasonID)
	if err != nil {
		return nil, nil, nil, err
	}

	league, err := s.leagues.GetByID(ctx, season.LeagueID)
	if err != nil {
		return nil, nil, nil, err
	}

	loc, err := league.Location()
	if err != nil {
		return nil, nil, nil, contracts.Invalid("league has an invalid timezone", "timezone").WithCause(err)
	}

	return season, league, loc, nil
}
