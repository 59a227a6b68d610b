package analysis

import (
	"math"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

const (
	ShortWindow = 5
	LongWindow  = 10
)

// Over/under lines per metric. Totals are integers so no total can sit on a line.
var (
	GoalLines   = []float64{0.5, 1.5, 2.5, 3.5, 4.5}
	CardLines   = []float64{1.5, 2.5, 3.5, 4.5, 5.5}
	CornerLines = []float64{7.5, 8.5, 9.5, 10.5, 11.5, 12.5}
)

// ComputeThresholds counts totals strictly over and under each line. The under
// percentage is derived from the over percentage so each pair sums to 100.
func ComputeThresholds(totals []int, lines []float64) []ThresholdStatistic {
	out := make([]ThresholdStatistic, 0, len(lines))
	n := len(totals)
	if n == 0 {
		return out
	}

	for _, line := range lines {
		over, under := 0, 0
		for _, total := range totals {
			switch v := float64(total); {
			case v > line:
				over++
			case v < line:
				under++
			}
		}

		overPct := percentage(over, n)
		out = append(out, ThresholdStatistic{
			Line:            line,
			OverCount:       over,
			UnderCount:      under,
			TotalMatches:    n,
			OverPercentage:  overPct,
			UnderPercentage: 100 - overPct,
		})
	}
	return out
}

func percentage(count, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(n)))
}

func average(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// window returns a copy of the first size matches.
func window(matches []match.HistoricalMatch, size int) []match.HistoricalMatch {
	if len(matches) > size {
		matches = matches[:size]
	}
	out := make([]match.HistoricalMatch, len(matches))
	copy(out, matches)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
