package analysis

import "github.com/riskibarqy/match-analysis/internal/domain/match"

func AnalyzeCorners(matches []match.HistoricalMatch, isHomeTeam bool) CornersAnalysis {
	return CornersAnalysis{
		Last5Matches:  cornersWindow(window(matches, ShortWindow), isHomeTeam),
		Last10Matches: cornersWindow(window(matches, LongWindow), isHomeTeam),
	}
}

func cornersWindow(matches []match.HistoricalMatch, isHomeTeam bool) CornersWindow {
	n := len(matches)
	totals := make([]int, 0, n)
	total, cornersFor, cornersAgainst := 0, 0, 0
	firstHalf, secondHalf, withSplit := 0, 0, 0

	for _, m := range matches {
		corners := m.Statistics.Corners.Total
		totals = append(totals, corners)
		total += corners
		cornersFor += m.CornersFor(isHomeTeam)
		cornersAgainst += m.CornersFor(!isHomeTeam)

		// Half averages only cover matches that report the split.
		if m.Statistics.Corners.HasHalfSplit() {
			withSplit++
			firstHalf += m.Statistics.Corners.FirstHalf.Total
			secondHalf += m.Statistics.Corners.SecondHalf.Total
		}
	}

	return CornersWindow{
		Matches:                  matches,
		MatchesAnalyzed:          n,
		Thresholds:               ComputeThresholds(totals, CornerLines),
		AverageCorners:           average(total, n),
		AverageCornersFor:        average(cornersFor, n),
		AverageCornersAgainst:    average(cornersAgainst, n),
		FirstHalfAverageCorners:  average(firstHalf, withSplit),
		SecondHalfAverageCorners: average(secondHalf, withSplit),
	}
}
