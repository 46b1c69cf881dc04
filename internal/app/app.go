package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/puzzle-league/internal/config"
	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	"github.com/riskibarqy/puzzle-league/internal/domain/shareparse"
	repocache "github.com/riskibarqy/puzzle-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/puzzle-league/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/puzzle-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/puzzle-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/puzzle-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/puzzle-league/internal/platform/cache"
	"github.com/riskibarqy/puzzle-league/internal/platform/id"
	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
	"github.com/riskibarqy/puzzle-league/internal/platform/resilience"
	"github.com/riskibarqy/puzzle-league/internal/platform/workerpool"
	"github.com/riskibarqy/puzzle-league/internal/usecase"
)

// App owns the HTTP server and the resources it needs released on shutdown.
type App struct {
	Server  *http.Server
	closers []func() error
}

type repositories struct {
	games     game.Repository
	leagues   league.Repository
	scores    score.Repository
	handicaps handicap.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	ids := id.NewUUIDGenerator()

	repos, err := a.buildRepositories(ctx, cfg, ids, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		repos.games = repocache.NewGameRepository(repos.games, store)
		repos.leagues = repocache.NewLeagueRepository(repos.leagues, store)
	}

	pool, err := workerpool.New(cfg.ParseWorkers)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create parse worker pool: %w", err)
	}
	a.closers = append(a.closers, func() error {
		pool.Release()
		return nil
	})

	standingsSvc := usecase.NewStandingsService(repos.leagues, repos.games, repos.scores, repos.handicaps, store, logger.Named("standings"))
	handler := httpapi.NewHandler(
		usecase.NewGameService(repos.games),
		usecase.NewShareParserService(repos.games, shareparse.NewDefault(), pool, cfg.ParseBatchMax, logger.Named("shareparse")),
		usecase.NewScoreService(repos.games, repos.leagues, repos.scores, standingsSvc, cfg.ScoreLocation, logger.Named("scores")),
		standingsSvc,
		usecase.NewHandicapService(repos.leagues, repos.handicaps, ids, standingsSvc),
		logger.Named("httpapi"),
	)

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, logger.Named("http"), cfg.CORSAllowedOrigins),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"store", storeName(cfg),
		"cache_enabled", cfg.CacheEnabled,
		"parse_workers", cfg.ParseWorkers,
		"score_timezone", cfg.ScoreTimeZone,
	)
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, ids id.Generator, logger *logging.Logger) (repositories, error) {
	if !cfg.UsesPostgres() {
		seedLeagues, activations := memory.SeedLeagues()
		return repositories{
			games:     memory.NewGameRepository(memory.SeedGames()),
			leagues:   memory.NewLeagueRepository(seedLeagues, activations, ids),
			scores:    memory.NewScoreRepository(),
			handicaps: memory.NewHandicapRepository(),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	if cfg.DBSeedDemo {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("seed demo league: %w", err)
		}
		logger.Info("demo league seed checked")
	}

	breaker := cfg.DBBreaker.New("postgres")
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
	})
	return repositories{
		games:     guarded.NewGameRepository(postgres.NewGameRepository(db), breaker),
		leagues:   guarded.NewLeagueRepository(postgres.NewLeagueRepository(db, ids), breaker),
		scores:    guarded.NewScoreRepository(postgres.NewScoreRepository(db), breaker),
		handicaps: guarded.NewHandicapRepository(postgres.NewHandicapRepository(db), breaker),
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	otelsql.ReportDBStatsMetrics(db.DB)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func storeName(cfg config.Config) string {
	if cfg.UsesPostgres() {
		return "postgres"
	}
	return "memory"
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
