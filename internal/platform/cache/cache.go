package cache

import (
	"context"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"golang.org/x/sync/singleflight"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Cache is a byte-oriented key/value store with per-entry TTL. Implementations
// never return errors: any backend failure is reported as a miss or false so
// callers always have a degrade-to-miss path.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
	Exists(ctx context.Context, key string) bool
	Clear(ctx context.Context) bool
	Backend() string
}

// GetJSON decodes a cached value into T. Undecodable entries are treated as misses.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var out T
	if c == nil {
		return out, false
	}
	raw, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		logging.Default().WarnContext(ctx, "discard undecodable cache entry", "key", key, "backend", c.Backend(), "error", err)
		var zero T
		return zero, false
	}
	return out, true
}

func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) bool {
	if c == nil {
		return false
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		logging.Default().WarnContext(ctx, "encode cache entry failed", "key", key, "error", err)
		return false
	}
	return c.Set(ctx, key, raw, ttl)
}

// DefaultLoadTimeout bounds one shared load once it is detached from its callers.
const DefaultLoadTimeout = 30 * time.Second

// Loader reads through a Cache and collapses concurrent misses for the same key
// into one call of the load function.
type Loader struct {
	cache   Cache
	flight  singleflight.Group
	timeout time.Duration
}

func NewLoader(c Cache) *Loader {
	return &Loader{cache: c, timeout: DefaultLoadTimeout}
}

// Load returns the cached T under key, or runs fn, stores its result for ttl and
// returns it. Errors from fn are never cached.
//
// The shared call runs detached from the callers' cancellation and is bounded
// by the loader timeout. Each caller returns as soon as its own ctx is done.
func Load[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if fn == nil {
		return zero, crerr.New("cache loader function is required")
	}
	if l == nil || l.cache == nil || key == "" {
		return fn(ctx)
	}

	if cached, ok := GetJSON[T](ctx, l.cache, key); ok {
		return cached, nil
	}

	results := l.flight.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.loadTimeout())
		defer cancel()

		if cached, ok := GetJSON[T](loadCtx, l.cache, key); ok {
			return cached, nil
		}
		loaded, loadErr := fn(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		SetJSON(loadCtx, l.cache, key, loaded, ttl)
		return loaded, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-results:
	}
	if res.Err != nil {
		return zero, res.Err
	}

	value, ok := res.Val.(T)
	if !ok {
		return zero, crerr.Newf("unexpected cached value type %T for key %q", res.Val, key)
	}
	return value, nil
}

func (l *Loader) loadTimeout() time.Duration {
	if l.timeout <= 0 {
		return DefaultLoadTimeout
	}
	return l.timeout
}
