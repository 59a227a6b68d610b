package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/match-analysis/internal/platform/logging"
)

const defaultConnectTimeout = 3 * time.Second

type Config struct {
	Backend        string
	RedisURL       string
	PostgresURL    string
	KeyPrefix      string
	DefaultTTL     time.Duration
	MaxEntries     int
	ConnectTimeout time.Duration
}

// New builds the configured backend once at startup. A remote backend that
// cannot be reached is replaced by the in-memory store with a warning.
func New(ctx context.Context, cfg Config, logger *logging.Logger) Cache {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case BackendRedis:
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		store, err := NewRedisStore(connectCtx, cfg.RedisURL, cfg.KeyPrefix, cfg.DefaultTTL, logger)
		if err == nil {
			logger.InfoContext(ctx, "cache backend ready", "backend", BackendRedis, "prefix", cfg.KeyPrefix)
			return store
		}
		logger.WarnContext(ctx, "redis cache unavailable, falling back to memory", "error", err)
	case BackendPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		store, err := NewPostgresStore(connectCtx, cfg.PostgresURL, cfg.KeyPrefix, cfg.DefaultTTL, logger)
		if err == nil {
			logger.InfoContext(ctx, "cache backend ready", "backend", BackendPostgres, "prefix", cfg.KeyPrefix)
			return store
		}
		logger.WarnContext(ctx, "postgres cache unavailable, falling back to memory", "error", err)
	case "", BackendMemory:
	default:
		logger.WarnContext(ctx, "unknown cache backend, using memory", "backend", cfg.Backend)
	}

	logger.InfoContext(ctx, "cache backend ready", "backend", BackendMemory, "max_entries", cfg.MaxEntries)
	return NewMemoryStore(cfg.DefaultTTL, cfg.MaxEntries)
}
