package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
	basecache "github.com/riskibarqy/match-analysis/internal/platform/cache"
)

const (
	DefaultTeamMatchesTTL = 15 * time.Minute
	DefaultHeadToHeadTTL  = 30 * time.Minute
	DefaultStandingsTTL   = time.Hour
	DefaultAveragesTTL    = 4 * time.Hour
)

// TTLs sets how long each kind of provider response is kept. Zero values fall
// back to the defaults above.
type TTLs struct {
	TeamMatches time.Duration
	HeadToHead  time.Duration
	Standings   time.Duration
	Averages    time.Duration
}

func (t TTLs) withDefaults() TTLs {
	if t.TeamMatches <= 0 {
		t.TeamMatches = DefaultTeamMatchesTTL
	}
	if t.HeadToHead <= 0 {
		t.HeadToHead = DefaultHeadToHeadTTL
	}
	if t.Standings <= 0 {
		t.Standings = DefaultStandingsTTL
	}
	if t.Averages <= 0 {
		t.Averages = DefaultAveragesTTL
	}
	return t
}

// MatchRepository reads through the cache before calling next.
type MatchRepository struct {
	next   match.Repository
	loader *basecache.Loader
	ttl    TTLs
}

func NewMatchRepository(next match.Repository, loader *basecache.Loader, ttl TTLs) *MatchRepository {
	return &MatchRepository{next: next, loader: loader, ttl: ttl.withDefaults()}
}

func (r *MatchRepository) TeamMatches(ctx context.Context, query match.TeamMatchesQuery) ([]match.HistoricalMatch, error) {
	if query.Type == "" {
		query.Type = match.TypeAll
	}
	key := TeamMatchesKey(query)
	items, err := basecache.Load(ctx, r.loader, key, r.ttl.TeamMatches, func(ctx context.Context) ([]match.HistoricalMatch, error) {
		return r.next.TeamMatches(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return append([]match.HistoricalMatch(nil), items...), nil
}

func (r *MatchRepository) HeadToHead(ctx context.Context, teamA, teamB int64, limit int) ([]match.HistoricalMatch, error) {
	key := HeadToHeadKey(teamA, teamB, limit)
	items, err := basecache.Load(ctx, r.loader, key, r.ttl.HeadToHead, func(ctx context.Context) ([]match.HistoricalMatch, error) {
		return r.next.HeadToHead(ctx, teamA, teamB, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]match.HistoricalMatch(nil), items...), nil
}

func (r *MatchRepository) LeagueStandings(ctx context.Context, leagueID int64) ([]leaguestanding.Standing, error) {
	key := basecache.Key("league-standings", basecache.IDPart(leagueID, "any"))
	items, err := basecache.Load(ctx, r.loader, key, r.ttl.Standings, func(ctx context.Context) ([]leaguestanding.Standing, error) {
		return r.next.LeagueStandings(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return append([]leaguestanding.Standing(nil), items...), nil
}

func (r *MatchRepository) LeagueAverages(ctx context.Context, leagueID int64) (leaguestanding.Averages, error) {
	key := basecache.Key("league-averages", basecache.IDPart(leagueID, "any"))
	return basecache.Load(ctx, r.loader, key, r.ttl.Averages, func(ctx context.Context) (leaguestanding.Averages, error) {
		return r.next.LeagueAverages(ctx, leagueID)
	})
}

func TeamMatchesKey(query match.TeamMatchesQuery) string {
	return basecache.Key(
		"team-matches",
		strconv.FormatInt(query.TeamID, 10),
		string(query.Type),
		strconv.Itoa(query.Limit),
		basecache.IDPart(query.LeagueID, "any"),
	)
}

// HeadToHeadKey orders the pair so A-vs-B and B-vs-A share one entry.
func HeadToHeadKey(teamA, teamB int64, limit int) string {
	lo, hi := teamA, teamB
	if hi < lo {
		lo, hi = hi, lo
	}
	return basecache.Key("h2h", strconv.FormatInt(lo, 10), strconv.FormatInt(hi, 10), strconv.Itoa(limit))
}
