package resilience

import "time"

// Fallbacks applied to zero or negative settings.
const (
	DefaultRequestsPerMinute = 100

	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenRequests = 2
)

// CircuitBreakerConfig guards one upstream. A zero value is a disabled breaker.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// Normalized fills unset thresholds without touching Enabled.
func (c CircuitBreakerConfig) Normalized() CircuitBreakerConfig {
	c.FailureThreshold = atLeastOne(c.FailureThreshold, defaultFailureThreshold)
	c.HalfOpenMaxReq = atLeastOne(c.HalfOpenMaxReq, defaultHalfOpenRequests)
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	return c
}

func atLeastOne(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}
