package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/match-analysis/internal/config"
	"github.com/riskibarqy/match-analysis/internal/platform/cache"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		HTTPAddr:             ":0",
		CORSAllowedOrigins:   []string{"*"},
		ReadTimeout:          time.Second,
		WriteTimeout:         time.Second,
		CacheBackend:         cache.BackendMemory,
		CacheKeyPrefix:       "test:",
		CacheDefaultTTL:      time.Minute,
		CacheMaxEntries:      100,
		CachePurgeInterval:   time.Minute,
		AnalysisBatchWorkers: 2,
		InternalToken:        "token",
	}
}

func TestNew_ServesSeededHistoryWithoutProvider(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("close app: %v", err)
		}
	})

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analysis/19/8?leagueId=8", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, nil
}

func TestStartPurges_RunsUntilClosed(t *testing.T) {
	t.Parallel()

	a := &App{store: cache.NewMemoryStore(time.Minute, 10), logger: logging.NewNop()}
	purger := &countingPurger{}
	a.startPurges(purger, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for purger.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if purger.calls.Load() == 0 {
		t.Fatalf("expected at least one purge before close")
	}

	after := purger.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := purger.calls.Load(); got != after {
		t.Fatalf("purges must stop after close: before=%d after=%d", after, got)
	}
}
