package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestJSONRoundTripThroughCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(time.Hour, 0)

	require.True(t, SetJSON(ctx, store, "k", sample{Name: "goals", Value: 2.7}, 0))
	got, ok := GetJSON[sample](ctx, store, "k")
	require.True(t, ok)
	require.Equal(t, sample{Name: "goals", Value: 2.7}, got)
}

func TestGetJSON_UndecodableIsMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(time.Hour, 0)
	store.Set(ctx, "k", []byte("{not json"), 0)

	if _, ok := GetJSON[sample](ctx, store, "k"); ok {
		t.Fatalf("undecodable entry should be treated as a miss")
	}
}

func TestLoad_CachesSuccessfulResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loader := NewLoader(NewMemoryStore(time.Hour, 0))

	calls := 0
	fn := func(context.Context) (sample, error) {
		calls++
		return sample{Name: "corners", Value: 10.2}, nil
	}

	first, err := Load(ctx, loader, "k", time.Minute, fn)
	require.NoError(t, err)
	second, err := Load(ctx, loader, "k", time.Minute, fn)
	require.NoError(t, err)

	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}
	if first != second {
		t.Fatalf("cached value differs: %+v vs %+v", first, second)
	}
}

func TestLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(time.Hour, 0)
	loader := NewLoader(store)
	boom := errors.New("upstream down")

	_, err := Load(ctx, loader, "k", time.Minute, func(context.Context) (sample, error) {
		return sample{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if store.Exists(ctx, "k") {
		t.Fatalf("failed loads must not be cached")
	}
}

func TestLoad_CollapsesConcurrentMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loader := NewLoader(NewMemoryStore(time.Hour, 0))

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(context.Context) (sample, error) {
		calls.Add(1)
		<-release
		return sample{Name: "cards"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Load(ctx, loader, "shared", time.Minute, fn); err != nil {
				t.Errorf("load: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single upstream load, got %d", got)
	}
}

func TestLoad_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	t.Parallel()

	loader := NewLoader(NewMemoryStore(time.Hour, 0))

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	fn := func(ctx context.Context) (sample, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return sample{}, err
		}
		return sample{Name: "team-matches", Value: 10}, nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := Load(ctxA, loader, "team-matches:1:home:10:any", time.Minute, fn)
		errA <- err
	}()
	<-started

	type outcome struct {
		value sample
		err   error
	}
	resB := make(chan outcome, 1)
	go func() {
		v, err := Load(context.Background(), loader, "team-matches:1:home:10:any", time.Minute, fn)
		resB <- outcome{value: v, err: err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller should return its own ctx error, got %v", err)
	}

	close(release)
	got := <-resB
	if got.err != nil {
		t.Fatalf("healthy caller failed because another caller was cancelled: %v", got.err)
	}
	if got.value.Value != 10 {
		t.Fatalf("unexpected shared value %+v", got.value)
	}
	if !loader.cache.Exists(context.Background(), "team-matches:1:home:10:any") {
		t.Fatalf("shared load should be cached even though its first caller left")
	}
}

func TestLoad_NilLoaderCallsThrough(t *testing.T) {
	t.Parallel()

	got, err := Load(context.Background(), nil, "k", time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, got)
}

func TestKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		parts []string
		want  string
	}{
		{parts: []string{"team-matches", "10", "home", "10", "any"}, want: "team-matches:10:home:10:any"},
		{parts: []string{"league-standings", "8"}, want: "league-standings:8"},
		{parts: []string{"a", "", "b"}, want: "a::b"},
	}
	for _, tc := range cases {
		if got := Key(tc.parts...); got != tc.want {
			t.Fatalf("Key(%v)=%q want %q", tc.parts, got, tc.want)
		}
	}

	if got := IDPart(0, "any"); got != "any" {
		t.Fatalf("IDPart fallback=%q", got)
	}
	if got := IDPart(42, "any"); got != "42" {
		t.Fatalf("IDPart=%q", got)
	}
}
