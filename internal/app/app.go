package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/riskibarqy/match-analysis/external/sportmonks"
	"github.com/riskibarqy/match-analysis/internal/config"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
	cacherepo "github.com/riskibarqy/match-analysis/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-analysis/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-analysis/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-analysis/internal/platform/cache"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"github.com/riskibarqy/match-analysis/internal/platform/resilience"
	"github.com/riskibarqy/match-analysis/internal/usecase"
)

type expiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server

	store      cache.Cache
	logger     *logging.Logger
	stopPurges context.CancelFunc
	purges     sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store := cache.New(ctx, cache.Config{
		Backend:        cfg.CacheBackend,
		RedisURL:       cfg.CacheRedisURL,
		PostgresURL:    cfg.CacheDBURL,
		KeyPrefix:      cfg.CacheKeyPrefix,
		DefaultTTL:     cfg.CacheDefaultTTL,
		MaxEntries:     cfg.CacheMaxEntries,
		ConnectTimeout: cfg.CacheConnectTimeout,
	}, logger.Named("cache"))
	loader := cache.NewLoader(store)

	repo := cacherepo.NewMatchRepository(newProvider(cfg, logger), loader, cacherepo.TTLs{
		TeamMatches: cfg.CacheTeamMatchesTTL,
		HeadToHead:  cfg.CacheHeadToHeadTTL,
		Standings:   cfg.CacheStandingsTTL,
		Averages:    cfg.CacheAveragesTTL,
	})

	analysisLogger := logger.Named("analysis")
	analysisSvc := usecase.NewMatchAnalysisService(repo, loader, cfg.CacheAnalysisTTL, analysisLogger)
	batchSvc := usecase.NewBatchAnalysisService(analysisSvc, cfg.AnalysisBatchWorkers, analysisLogger)
	historySvc := usecase.NewHistoryService(repo)

	handler := httpapi.NewHandler(analysisSvc, batchSvc, historySvc, store, logger.Named("http"))
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalToken)

	a := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		store:  store,
		logger: logger,
	}
	if purger, ok := store.(expiredPurger); ok {
		a.startPurges(purger, cfg.CachePurgeInterval)
	}
	return a, nil
}

// newProvider picks the upstream source of historical data. Without SportMonks
// the service answers from a seeded in-memory history.
func newProvider(cfg config.Config, logger *logging.Logger) match.Repository {
	if !cfg.SportMonksEnabled {
		logger.Info("sportmonks disabled, serving seeded history", "reason", "SPORTMONKS_ENABLED=false")
		return memory.NewMatchRepository(memory.SeedMatches(time.Now().UTC()))
	}

	logger.Info("sportmonks enabled",
		"base_url", cfg.SportMonksBaseURL,
		"requests_per_minute", cfg.SportMonksRequestsPerMinute,
		"lookback_days", cfg.SportMonksLookbackDays,
	)
	return sportmonks.NewClient(sportmonks.ClientConfig{
		BaseURL:           cfg.SportMonksBaseURL,
		Token:             cfg.SportMonksToken,
		Timeout:           cfg.SportMonksTimeout,
		RequestsPerMinute: cfg.SportMonksRequestsPerMinute,
		LookbackDays:      cfg.SportMonksLookbackDays,
		Logger:            logger.Named("sportmonks"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SportMonksCircuitEnabled,
			FailureThreshold: cfg.SportMonksCircuitFailureCount,
			OpenTimeout:      cfg.SportMonksCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SportMonksCircuitHalfOpenMaxReq,
		},
	})
}

func (a *App) startPurges(purger expiredPurger, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopPurges = cancel

	a.purges.Add(1)
	go func() {
		defer a.purges.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := purger.PurgeExpired(ctx)
				if err != nil {
					a.logger.WarnContext(ctx, "purge expired cache entries failed", "error", err)
					continue
				}
				if removed > 0 {
					a.logger.DebugContext(ctx, "purged expired cache entries", "removed", removed)
				}
			}
		}
	}()
}

// Close stops background work and releases the cache connection. The HTTP
// server is shut down by the caller.
func (a *App) Close() error {
	if a.stopPurges != nil {
		a.stopPurges()
	}
	a.purges.Wait()

	if closer, ok := a.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
