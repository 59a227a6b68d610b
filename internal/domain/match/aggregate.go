package match

import (
	"math"
	"sort"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
)

// ComputeLeagueAverages summarizes finished matches of one league. Cards and
// corners are averaged only over matches that carried statistics; when none
// did the league defaults are kept.
func ComputeLeagueAverages(leagueID int64, matches []HistoricalMatch) leaguestanding.Averages {
	if len(matches) == 0 {
		return leaguestanding.DefaultAverages(leagueID)
	}

	goals, cards, corners, withStats := 0, 0, 0, 0
	homeWins, draws, awayWins := 0, 0, 0
	for _, m := range matches {
		goals += m.Result.HomeScore + m.Result.AwayScore
		if m.StatisticsAvailable {
			withStats++
			cards += m.TotalCards()
			corners += m.Statistics.Corners.Total
		}
		switch m.WinnerID() {
		case 0:
			draws++
		case m.HomeTeam.ID:
			homeWins++
		default:
			awayWins++
		}
	}

	n := float64(len(matches))
	out := leaguestanding.Averages{
		LeagueID:          leagueID,
		GoalsPerMatch:     round2(float64(goals) / n),
		CardsPerMatch:     leaguestanding.DefaultCardsPerMatch,
		CornersPerMatch:   leaguestanding.DefaultCornersPerMatch,
		HomeWinPercentage: round2(100 * float64(homeWins) / n),
		DrawPercentage:    round2(100 * float64(draws) / n),
		AwayWinPercentage: round2(100 * float64(awayWins) / n),
		MatchesSampled:    len(matches),
	}
	if withStats > 0 {
		out.CardsPerMatch = round2(float64(cards) / float64(withStats))
		out.CornersPerMatch = round2(float64(corners) / float64(withStats))
	}
	return out
}

// BuildStandings derives a league table from finished results: three points a
// win, one a draw, ordered by points, goal difference, goals for and team id.
// Form holds the last five results, most recent first.
func BuildStandings(leagueID int64, matches []HistoricalMatch) []leaguestanding.Standing {
	ordered := make([]HistoricalMatch, 0, len(matches))
	for _, m := range matches {
		if m.IsFinished() {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.After(ordered[j].Date) })

	rows := make(map[int64]*leaguestanding.Standing)
	row := func(team Team) *leaguestanding.Standing {
		r, ok := rows[team.ID]
		if !ok {
			r = &leaguestanding.Standing{LeagueID: leagueID, TeamID: team.ID, TeamName: team.Name}
			rows[team.ID] = r
		}
		return r
	}

	for _, m := range ordered {
		home, away := row(m.HomeTeam), row(m.AwayTeam)
		record(home, m.Result.HomeScore, m.Result.AwayScore)
		record(away, m.Result.AwayScore, m.Result.HomeScore)
	}

	out := make([]leaguestanding.Standing, 0, len(rows))
	for _, r := range rows {
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Points != b.Points:
			return a.Points > b.Points
		case a.GoalDifference != b.GoalDifference:
			return a.GoalDifference > b.GoalDifference
		case a.GoalsFor != b.GoalsFor:
			return a.GoalsFor > b.GoalsFor
		default:
			return a.TeamID < b.TeamID
		}
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

func record(r *leaguestanding.Standing, scored, conceded int) {
	r.Played++
	r.GoalsFor += scored
	r.GoalsAgainst += conceded

	letter := "D"
	switch {
	case scored > conceded:
		r.Won++
		r.Points += 3
		letter = "W"
	case scored < conceded:
		r.Lost++
		letter = "L"
	default:
		r.Draw++
		r.Points++
	}
	if len(r.Form) < 5 {
		r.Form += letter
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
