package analysis

import "github.com/riskibarqy/match-analysis/internal/domain/match"

// AnalyzeGoals builds the last-5 and last-10 goal windows of a most-recent-first
// history. isHomeTeam selects which side's score counts as "for".
func AnalyzeGoals(matches []match.HistoricalMatch, isHomeTeam bool) GoalsAnalysis {
	return GoalsAnalysis{
		Last5Matches:  goalsWindow(window(matches, ShortWindow), isHomeTeam),
		Last10Matches: goalsWindow(window(matches, LongWindow), isHomeTeam),
	}
}

func goalsWindow(matches []match.HistoricalMatch, isHomeTeam bool) GoalsWindow {
	n := len(matches)
	totals := make([]int, 0, n)
	goalsFor, goalsAgainst, total, btts := 0, 0, 0, 0

	for _, m := range matches {
		totals = append(totals, m.Result.HomeScore+m.Result.AwayScore)
		total += m.Result.HomeScore + m.Result.AwayScore
		goalsFor += m.GoalsFor(isHomeTeam)
		goalsAgainst += m.GoalsAgainst(isHomeTeam)
		if m.Result.HomeScore > 0 && m.Result.AwayScore > 0 {
			btts++
		}
	}

	return GoalsWindow{
		Matches:                   matches,
		MatchesAnalyzed:           n,
		Thresholds:                ComputeThresholds(totals, GoalLines),
		AverageGoals:              average(total, n),
		AverageGoalsFor:           average(goalsFor, n),
		AverageGoalsAgainst:       average(goalsAgainst, n),
		BothTeamsScoredPercentage: percentage(btts, n),
	}
}
