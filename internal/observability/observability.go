package observability

import (
	"context"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analysis/internal/config"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
)

// Shutdown flushes and stops one or more telemetry backends.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup starts tracing, continuous profiling and the pprof listener according
// to cfg. Backends that are disabled contribute a no-op. The returned Shutdown
// stops them in reverse start order and reports every failure.
func Setup(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stops := []Shutdown{initUptrace(cfg, logger)}

	stopProfiler, err := startPyroscope(cfg, logger)
	if err != nil {
		_ = shutdownAll(stops)(context.Background())
		return nil, crerr.Wrap(err, "start pyroscope")
	}
	stops = append(stops, stopProfiler, startPprof(cfg, logger))

	return shutdownAll(stops), nil
}

func shutdownAll(stops []Shutdown) Shutdown {
	return func(ctx context.Context) error {
		errs := make([]error, 0, len(stops))
		for i := len(stops) - 1; i >= 0; i-- {
			errs = append(errs, stops[i](ctx))
		}
		return errors.Join(errs...)
	}
}
