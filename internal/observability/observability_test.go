package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/match-analysis/internal/config"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
)

func TestSetup_AllDisabled(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(config.Config{
		ServiceName:    "match-analysis-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	t.Parallel()

	shutdown := initUptrace(config.Config{UptraceEnabled: true, UptraceDSN: "  "}, logging.NewNop())
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_PprofListenerStops(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown pprof: %v", err)
	}
}

func TestPprofMux_ServesCmdline(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pprof cmdline, got %d", rec.Code)
	}
}

func TestShutdownAll_ReverseOrderAndCombinedErrors(t *testing.T) {
	t.Parallel()

	var order []string
	errFirst := errors.New("first failed")
	errLast := errors.New("last failed")
	shutdown := shutdownAll([]Shutdown{
		func(context.Context) error {
			order = append(order, "uptrace")
			return errFirst
		},
		func(context.Context) error {
			order = append(order, "pyroscope")
			return nil
		},
		func(context.Context) error {
			order = append(order, "pprof")
			return errLast
		},
	})

	err := shutdown(context.Background())
	if !errors.Is(err, errFirst) || !errors.Is(err, errLast) {
		t.Fatalf("expected both failures to be reported, got %v", err)
	}
	if len(order) != 3 || order[0] != "pprof" || order[2] != "uptrace" {
		t.Fatalf("unexpected shutdown order %v", order)
	}
}
