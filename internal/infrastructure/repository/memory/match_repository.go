package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
	"github.com/riskibarqy/match-analysis/internal/usecase"
)

// MatchRepository serves a fixed match history. Standings and league averages
// are derived from the finished matches it holds.
type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.HistoricalMatch
	teams   map[int64]struct{}
	leagues map[int64]struct{}
}

func NewMatchRepository(matches []match.HistoricalMatch) *MatchRepository {
	items := append([]match.HistoricalMatch(nil), matches...)
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID > items[j].ID
	})

	teams := make(map[int64]struct{})
	leagues := make(map[int64]struct{})
	for _, m := range items {
		teams[m.HomeTeam.ID] = struct{}{}
		teams[m.AwayTeam.ID] = struct{}{}
		if m.League.ID > 0 {
			leagues[m.League.ID] = struct{}{}
		}
	}
	return &MatchRepository{matches: items, teams: teams, leagues: leagues}
}

func (r *MatchRepository) TeamMatches(_ context.Context, query match.TeamMatchesQuery) ([]match.HistoricalMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.teams[query.TeamID]; !ok {
		return nil, fmt.Errorf("%w: team_id=%d", usecase.ErrNotFound, query.TeamID)
	}

	out := make([]match.HistoricalMatch, 0, max(query.Limit, 0))
	for _, m := range r.matches {
		if query.Limit > 0 && len(out) >= query.Limit {
			break
		}
		if !m.IsFinished() || !matchesQuery(m, query) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MatchRepository) HeadToHead(_ context.Context, teamA, teamB int64, limit int) ([]match.HistoricalMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.HistoricalMatch, 0, max(limit, 0))
	for _, m := range r.matches {
		if limit > 0 && len(out) >= limit {
			break
		}
		if m.IsFinished() && m.Involves(teamA) && m.Involves(teamB) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MatchRepository) LeagueStandings(_ context.Context, leagueID int64) ([]leaguestanding.Standing, error) {
	matches, err := r.leagueMatches(leagueID)
	if err != nil {
		return nil, err
	}
	return match.BuildStandings(leagueID, matches), nil
}

func (r *MatchRepository) LeagueAverages(_ context.Context, leagueID int64) (leaguestanding.Averages, error) {
	matches, err := r.leagueMatches(leagueID)
	if err != nil {
		return leaguestanding.Averages{}, err
	}
	return match.ComputeLeagueAverages(leagueID, matches), nil
}

func (r *MatchRepository) leagueMatches(leagueID int64) ([]match.HistoricalMatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.leagues[leagueID]; !ok {
		return nil, fmt.Errorf("%w: league_id=%d", usecase.ErrNotFound, leagueID)
	}
	var out []match.HistoricalMatch
	for _, m := range r.matches {
		if m.League.ID == leagueID && m.IsFinished() {
			out = append(out, m)
		}
	}
	return out, nil
}

func matchesQuery(m match.HistoricalMatch, query match.TeamMatchesQuery) bool {
	switch query.Type {
	case match.TypeHome:
		if m.HomeTeam.ID != query.TeamID {
			return false
		}
	case match.TypeAway:
		if m.AwayTeam.ID != query.TeamID {
			return false
		}
	default:
		if !m.Involves(query.TeamID) {
			return false
		}
	}
	return query.LeagueID <= 0 || m.League.ID == query.LeagueID
}
