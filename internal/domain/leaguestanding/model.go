package leaguestanding

import "time"

// Standing represents a league table row for one team.
type Standing struct {
	LeagueID       int64      `json:"leagueId"`
	SeasonID       int64      `json:"seasonId,omitempty"`
	TeamID         int64      `json:"teamId"`
	TeamName       string     `json:"teamName,omitempty"`
	Position       int        `json:"position"`
	Played         int        `json:"played"`
	Won            int        `json:"won"`
	Draw           int        `json:"draw"`
	Lost           int        `json:"lost"`
	GoalsFor       int        `json:"goalsFor"`
	GoalsAgainst   int        `json:"goalsAgainst"`
	GoalDifference int        `json:"goalDifference"`
	Points         int        `json:"points"`
	Form           string     `json:"form,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// Averages are league-wide per-match figures over a sample of finished fixtures.
type Averages struct {
	LeagueID          int64   `json:"leagueId"`
	GoalsPerMatch     float64 `json:"goalsPerMatch"`
	CardsPerMatch     float64 `json:"cardsPerMatch"`
	CornersPerMatch   float64 `json:"cornersPerMatch"`
	HomeWinPercentage float64 `json:"homeWinPercentage"`
	DrawPercentage    float64 `json:"drawPercentage"`
	AwayWinPercentage float64 `json:"awayWinPercentage"`
	MatchesSampled    int     `json:"matchesSampled"`
}

// Fallback league figures used when no league data can be obtained.
const (
	DefaultGoalsPerMatch     = 2.70
	DefaultCardsPerMatch     = 4.20
	DefaultCornersPerMatch   = 10.20
	DefaultHomeWinPercentage = 45
	DefaultDrawPercentage    = 27
	DefaultAwayWinPercentage = 28
)

func DefaultAverages(leagueID int64) Averages {
	return Averages{
		LeagueID:          leagueID,
		GoalsPerMatch:     DefaultGoalsPerMatch,
		CardsPerMatch:     DefaultCardsPerMatch,
		CornersPerMatch:   DefaultCornersPerMatch,
		HomeWinPercentage: DefaultHomeWinPercentage,
		DrawPercentage:    DefaultDrawPercentage,
		AwayWinPercentage: DefaultAwayWinPercentage,
	}
}

// FindTeam returns the standing row of teamID.
func FindTeam(rows []Standing, teamID int64) (Standing, bool) {
	for _, row := range rows {
		if row.TeamID == teamID {
			return row, true
		}
	}
	return Standing{}, false
}
