package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
	matchmock "github.com/riskibarqy/match-analysis/internal/mocks/domain/match"
	basecache "github.com/riskibarqy/match-analysis/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDecorated(t *testing.T) (*MatchRepository, *matchmock.Repository, *basecache.MemoryStore) {
	t.Helper()
	next := matchmock.NewRepository(t)
	store := basecache.NewMemoryStore(time.Hour, 100)
	return NewMatchRepository(next, basecache.NewLoader(store), TTLs{}), next, store
}

func sampleMatches() []match.HistoricalMatch {
	return []match.HistoricalMatch{
		{
			ID:       1,
			HomeTeam: match.Team{ID: 10, Name: "Home"},
			AwayTeam: match.Team{ID: 20, Name: "Away"},
			Date:     time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC),
			Status:   match.StatusFinished,
			Result:   match.Result{HomeScore: 2, AwayScore: 1, TotalGoals: 3},
		},
	}
}

func TestMatchRepository_TeamMatchesServedFromCacheOnSecondCall(t *testing.T) {
	t.Parallel()

	repo, next, store := newDecorated(t)
	ctx := context.Background()
	query := match.TeamMatchesQuery{TeamID: 10, Type: match.TypeHome, Limit: 10}

	next.On("TeamMatches", mock.Anything, query).Return(sampleMatches(), nil).Once()

	first, err := repo.TeamMatches(ctx, query)
	require.NoError(t, err)
	second, err := repo.TeamMatches(ctx, query)
	require.NoError(t, err)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("unexpected lengths first=%d second=%d", len(first), len(second))
	}
	if !second[0].Date.Equal(first[0].Date) || second[0].Result.TotalGoals != 3 {
		t.Fatalf("cached value differs: %+v", second[0])
	}
	if !store.Exists(ctx, "team-matches:10:home:10:any") {
		t.Fatalf("expected team matches entry under its documented key")
	}
}

func TestMatchRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	repo, next, store := newDecorated(t)
	ctx := context.Background()
	upstream := errors.New("provider down")

	next.On("HeadToHead", mock.Anything, int64(20), int64(10), 10).Return(nil, upstream).Once()
	next.On("HeadToHead", mock.Anything, int64(20), int64(10), 10).Return(sampleMatches(), nil).Once()

	if _, err := repo.HeadToHead(ctx, 20, 10, 10); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("failed fetch must not be cached")
	}

	got, err := repo.HeadToHead(ctx, 20, 10, 10)
	require.NoError(t, err)
	if len(got) != 1 {
		t.Fatalf("expected retry to load, got %d", len(got))
	}
	if !store.Exists(ctx, "h2h:10:20:10") {
		t.Fatalf("expected pair-ordered h2h key")
	}
}

func TestMatchRepository_LeagueDataCached(t *testing.T) {
	t.Parallel()

	repo, next, store := newDecorated(t)
	ctx := context.Background()

	next.On("LeagueStandings", mock.Anything, int64(8)).
		Return([]leaguestanding.Standing{{LeagueID: 8, TeamID: 10, Position: 1, Points: 40}}, nil).
		Once()
	next.On("LeagueAverages", mock.Anything, int64(8)).
		Return(leaguestanding.Averages{LeagueID: 8, GoalsPerMatch: 2.9, MatchesSampled: 40}, nil).
		Once()

	for i := 0; i < 2; i++ {
		rows, err := repo.LeagueStandings(ctx, 8)
		require.NoError(t, err)
		if len(rows) != 1 || rows[0].Points != 40 {
			t.Fatalf("unexpected standings %+v", rows)
		}
		avg, err := repo.LeagueAverages(ctx, 8)
		require.NoError(t, err)
		if avg.GoalsPerMatch != 2.9 || avg.MatchesSampled != 40 {
			t.Fatalf("unexpected averages %+v", avg)
		}
	}

	if !store.Exists(ctx, "league-standings:8") || !store.Exists(ctx, "league-averages:8") {
		t.Fatalf("expected league keys to be stored")
	}
}

func TestCacheKeys(t *testing.T) {
	t.Parallel()

	if got := TeamMatchesKey(match.TeamMatchesQuery{TeamID: 5, Type: match.TypeAway, Limit: 5, LeagueID: 8}); got != "team-matches:5:away:5:8" {
		t.Fatalf("unexpected team key %q", got)
	}
	if HeadToHeadKey(3, 9, 10) != HeadToHeadKey(9, 3, 10) {
		t.Fatalf("h2h key must not depend on argument order")
	}
}

func TestTTLs_Defaults(t *testing.T) {
	t.Parallel()

	got := TTLs{HeadToHead: time.Minute}.withDefaults()
	if got.TeamMatches != DefaultTeamMatchesTTL || got.HeadToHead != time.Minute || got.Standings != DefaultStandingsTTL || got.Averages != DefaultAveragesTTL {
		t.Fatalf("unexpected ttls %+v", got)
	}
}
