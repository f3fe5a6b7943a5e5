package commands

import (
	"fmt"

	"github.com/reellords/studio-league/backend/internal/awards"
	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/internal/external/boxoffice"
	"github.com/reellords/studio-league/backend/internal/ingest"
	"github.com/reellords/studio-league/backend/internal/league"
	"github.com/reellords/studio-league/backend/internal/roster"
	"github.com/reellords/studio-league/backend/internal/scoring"
	"github.com/reellords/studio-league/backend/pkg/config"
	"github.com/reellords/studio-league/backend/pkg/database"
	"github.com/reellords/studio-league/backend/pkg/httputil"
	"github.com/reellords/studio-league/backend/pkg/logger"
	"github.com/reellords/studio-league/backend/pkg/redis"
)

// app holds the wired service graph shared by the CLI commands
type app struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *database.DB
	cache  *redis.Client

	leagues contracts.LeagueRepository
	seasons contracts.SeasonRepository

	scoring *scoring.Service
	roster  *roster.Service
	awards  *awards.Service
	ingest  *ingest.Service

	limiter *redis.RateLimiter
}

// newApp loads config and connects every service to its dependencies
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
	}

	// Repositories
	leagueRepo := league.NewRepository(db.Pool)
	seasonRepo := leagueRepo.Seasons()
	studioRepo := roster.NewStudioRepository(db.Pool)
	ownershipRepo := roster.NewOwnershipRepository(db.Pool)
	movieRepo := ingest.NewMovieRepository(db.Pool)
	revenueRepo := ingest.NewRevenueRepository(db.Pool)
	snapshotRepo := scoring.NewSnapshotRepository(db.Pool)
	awardRepo := awards.NewRepository(db.Pool)

	// Redis-backed cache and limiter; nil when Redis is disabled
	var (
		rankingCache *redis.Cache
		limiter      *redis.RateLimiter
	)
	if redisClient != nil && redisClient.Enabled() {
		rankingCache = redis.NewCache(redisClient, "league")
		limiter = redis.NewRateLimiter(redisClient, "league")
	}

	// Box office scraping client, throttled to stay polite
	httpClient := httputil.New(cfg, log)
	if limiter != nil {
		httpClient = httpClient.WithRateLimiter(limiter, redis.BoxOfficeRateLimit)
	} else {
		httpClient = httpClient.WithLocalLimiter(cfg.BoxOffice.RequestsPerMin)
	}
	chartClient := boxoffice.NewClient(httpClient, cfg.BoxOffice.BaseURL, log)

	// Services
	aggregator := scoring.NewAggregator(ownershipRepo, revenueRepo, snapshotRepo, log)
	scoringSvc := scoring.NewService(leagueRepo, seasonRepo, awardRepo, snapshotRepo, aggregator, rankingCache, log)
	rosterSvc := roster.NewService(leagueRepo, seasonRepo, studioRepo, ownershipRepo, log)
	awardsSvc := awards.NewService(leagueRepo, seasonRepo, ownershipRepo, awardRepo, log)
	ingestSvc := ingest.NewService(chartClient, movieRepo, revenueRepo, log)

	return &app{
		cfg:     cfg,
		logger:  log,
		db:      db,
		cache:   redisClient,
		leagues: leagueRepo,
		seasons: seasonRepo,
		scoring: scoringSvc,
		roster:  rosterSvc,
		awards:  awardsSvc,
		ingest:  ingestSvc,
		limiter: limiter,
	}, nil
}

// Close releases database and cache connections
func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
