package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestLimiter(limit int, clock *fakeClock) *MinuteLimiter {
	l := NewMinuteLimiter(limit)
	l.now = clock.Now
	l.sleep = clock.Sleep
	return l
}

func TestMinuteLimiter_ExcessWaitsForNextMinute(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 15, 40, 0, time.UTC)}
	limiter := newTestLimiter(3, clock)

	for i := 0; i < 3; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("request %d inside budget failed: %v", i, err)
		}
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("no request inside the budget should wait, got sleeps=%v", clock.sleeps)
	}

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("excess request must not error: %v", err)
	}
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 20*time.Second {
		t.Fatalf("expected one 20s wait until the minute boundary, got %v", clock.sleeps)
	}
	boundary := time.Date(2026, 3, 1, 10, 16, 0, 0, time.UTC)
	if got := clock.Now(); got.Before(boundary) {
		t.Fatalf("excess request completed at %s, before boundary %s", got, boundary)
	}
	if got := limiter.Used(); got != 1 {
		t.Fatalf("new window should hold exactly the released request, used=%d", got)
	}
}

func TestMinuteLimiter_CheckAndConsume(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)}
	limiter := newTestLimiter(1, clock)

	if _, ok := limiter.CheckAndConsume(); !ok {
		t.Fatalf("first slot should be granted")
	}
	wait, ok := limiter.CheckAndConsume()
	if ok {
		t.Fatalf("second slot in the same minute should be refused")
	}
	if wait != time.Minute {
		t.Fatalf("expected full minute wait, got %s", wait)
	}

	limiter.Reset()
	if _, ok := limiter.CheckAndConsume(); !ok {
		t.Fatalf("reset should free the window")
	}
}

func TestMinuteLimiter_WaitHonoursContext(t *testing.T) {
	t.Parallel()

	limiter := NewMinuteLimiter(1)
	limiter.now = func() time.Time { return time.Date(2026, 3, 1, 10, 15, 1, 0, time.UTC) }

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled while waiting for the next minute, got %v", err)
	}
}

func TestMinuteLimiter_ConcurrentCallersShareBudget(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC)}
	limiter := newTestLimiter(5, clock)

	var wg sync.WaitGroup
	granted := make(chan struct{}, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := limiter.CheckAndConsume(); ok {
				granted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(granted)

	count := 0
	for range granted {
		count++
	}
	if count != 5 {
		t.Fatalf("expected exactly 5 grants in one minute, got %d", count)
	}
}
