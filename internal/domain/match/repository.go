package match

import (
	"context"
	"strings"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
)

type Type string

const (
	TypeHome Type = "home"
	TypeAway Type = "away"
	TypeAll  Type = "all"
)

// ParseType maps free text to a Type, defaulting to TypeAll.
func ParseType(v string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(v))) {
	case TypeHome:
		return TypeHome, true
	case TypeAway:
		return TypeAway, true
	case TypeAll, "":
		return TypeAll, true
	default:
		return TypeAll, false
	}
}

type TeamMatchesQuery struct {
	TeamID   int64
	Type     Type
	Limit    int
	LeagueID int64
}

// Repository is the read contract over historical match data. Results are
// most-recent-first and never longer than the requested limit.
type Repository interface {
	TeamMatches(ctx context.Context, query TeamMatchesQuery) ([]HistoricalMatch, error)
	HeadToHead(ctx context.Context, teamA, teamB int64, limit int) ([]HistoricalMatch, error)
	LeagueStandings(ctx context.Context, leagueID int64) ([]leaguestanding.Standing, error)
	LeagueAverages(ctx context.Context, leagueID int64) (leaguestanding.Averages, error)
}
