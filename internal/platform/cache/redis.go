package cache

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
)

const clearScanBatch = 500

// RedisStore shares cache entries across processes. All keys live under prefix
// and Clear refuses to run without one, so it never touches data owned by other
// services on the same database.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
	logger     *logging.Logger
}

// NewRedisStore parses redisURL and pings the server before returning.
func NewRedisStore(ctx context.Context, redisURL, prefix string, defaultTTL time.Duration, logger *logging.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "ping redis")
	}

	return NewRedisStoreFromClient(client, prefix, defaultTTL, logger), nil
}

func NewRedisStoreFromClient(client *redis.Client, prefix string, defaultTTL time.Duration, logger *logging.Logger) *RedisStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

func (s *RedisStore) Backend() string {
	return BackendRedis
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if crerr.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache get failed", "key", key, "error", err)
		return nil, false
	}
	return raw, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if key == "" {
		return false
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *RedisStore) Delete(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	removed, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache delete failed", "key", key, "error", err)
		return false
	}
	return removed > 0
}

func (s *RedisStore) Exists(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	count, err := s.client.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache exists failed", "key", key, "error", err)
		return false
	}
	return count > 0
}

func (s *RedisStore) Clear(ctx context.Context) bool {
	if s.prefix == "" {
		s.logger.WarnContext(ctx, "redis cache clear refused without a key prefix")
		return false
	}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", clearScanBatch).Result()
		if err != nil {
			s.logger.WarnContext(ctx, "redis cache scan failed", "prefix", s.prefix, "error", err)
			return false
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.logger.WarnContext(ctx, "redis cache clear failed", "prefix", s.prefix, "error", err)
				return false
			}
		}
		if next == 0 {
			return true
		}
		cursor = next
	}
}
