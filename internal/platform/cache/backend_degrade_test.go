package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func assertDegradesToMiss(t *testing.T, store Cache) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, ok := store.Get(ctx, "team-matches:19:home:10:any"); ok {
		t.Fatalf("%s: Get on a broken backend must miss", store.Backend())
	}
	if store.Set(ctx, "team-matches:19:home:10:any", []byte(`[]`), time.Minute) {
		t.Fatalf("%s: Set on a broken backend must report false", store.Backend())
	}
	if store.Delete(ctx, "team-matches:19:home:10:any") {
		t.Fatalf("%s: Delete on a broken backend must report false", store.Backend())
	}
	if store.Exists(ctx, "team-matches:19:home:10:any") {
		t.Fatalf("%s: Exists on a broken backend must report false", store.Backend())
	}
	if store.Clear(ctx) {
		t.Fatalf("%s: Clear on a broken backend must report false", store.Backend())
	}
}

func unreachableRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore_UnreachableServerDegradesToMiss(t *testing.T) {
	t.Parallel()

	store := NewRedisStoreFromClient(unreachableRedisClient(t), "match-analysis:", time.Hour, logging.NewNop())
	assertDegradesToMiss(t, store)
}

func TestRedisStore_ClearRefusedWithoutPrefix(t *testing.T) {
	t.Parallel()

	store := NewRedisStoreFromClient(unreachableRedisClient(t), "", time.Hour, logging.NewNop())
	if store.Clear(context.Background()) {
		t.Fatalf("clearing without a key prefix would flush the whole database")
	}
}

func TestPostgresStore_ClosedDatabaseDegradesToMiss(t *testing.T) {
	t.Parallel()

	db, err := sqlx.Open("postgres", "postgres://u:p@127.0.0.1:1/cache?sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store := NewPostgresStoreFromDB(db, "match-analysis:", time.Hour, logging.NewNop())
	assertDegradesToMiss(t, store)

	if _, err := store.PurgeExpired(context.Background()); err == nil {
		t.Fatalf("PurgeExpired on a closed database should report its error")
	}
}
