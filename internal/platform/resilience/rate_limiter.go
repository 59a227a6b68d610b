package resilience

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is the contract the provider client depends on. MinuteLimiter is
// the in-process implementation; a distributed limiter can satisfy the same
// interface without touching call sites.
type RateLimiter interface {
	Wait(ctx context.Context) error
	CheckAndConsume() (time.Duration, bool)
	Reset()
}

// MinuteLimiter is a fixed-window counter aligned to wall-clock minutes. Once
// the budget of the current minute is spent, callers wait for the next minute
// instead of failing.
type MinuteLimiter struct {
	mu          sync.Mutex
	limit       int
	windowStart time.Time
	used        int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewMinuteLimiter(requestsPerMinute int) *MinuteLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = DefaultRequestsPerMinute
	}
	return &MinuteLimiter{
		limit: requestsPerMinute,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// CheckAndConsume takes one slot from the current minute. When the minute is
// exhausted it returns false and the time left until the next boundary.
func (l *MinuteLimiter) CheckAndConsume() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	window := now.Truncate(time.Minute)
	if !window.Equal(l.windowStart) {
		l.windowStart = window
		l.used = 0
	}

	if l.used < l.limit {
		l.used++
		return 0, true
	}
	return window.Add(time.Minute).Sub(now), false
}

// Wait blocks until a slot is available. The lock is released while sleeping,
// so a waiting caller never stalls others that still fit in the window.
func (l *MinuteLimiter) Wait(ctx context.Context) error {
	for {
		wait, ok := l.CheckAndConsume()
		if ok {
			return nil
		}
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (l *MinuteLimiter) Reset() {
	l.mu.Lock()
	l.windowStart = time.Time{}
	l.used = 0
	l.mu.Unlock()
}

// Used returns the slots consumed in the current window.
func (l *MinuteLimiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.now().Truncate(time.Minute).Equal(l.windowStart) {
		return 0
	}
	return l.used
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
