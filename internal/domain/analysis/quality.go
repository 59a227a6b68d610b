package analysis

import (
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

const (
	qualityStep           = 25
	minValidTeamMatches   = 5
	minHeadToHeadMeetings = 3
	minHomeWindowMatches  = 8
	reliabilityBonus      = 20
	freshnessWindow       = 30 * 24 * time.Hour
	freshnessPerMatch     = 10
)

// IsValidForAnalysis reports whether a match is finished and carries real statistics.
func IsValidForAnalysis(m match.HistoricalMatch) bool {
	return m.IsFinished() && m.StatisticsAvailable
}

// AssessDataQuality scores the inputs of one analysis. The scores are advisory
// and never change how the analysis is computed.
func AssessDataQuality(homeMatches, awayMatches, meetings []match.HistoricalMatch, now time.Time) DataQuality {
	completeness := 0
	if countValid(homeMatches) >= minValidTeamMatches {
		completeness += qualityStep
	}
	if countValid(awayMatches) >= minValidTeamMatches {
		completeness += qualityStep
	}
	if len(meetings) >= minHeadToHeadMeetings {
		completeness += qualityStep
	}
	if len(window(homeMatches, LongWindow)) >= minHomeWindowMatches {
		completeness += qualityStep
	}
	completeness = min(completeness, 100)

	recent := 0
	for _, pool := range [][]match.HistoricalMatch{window(homeMatches, ShortWindow), window(awayMatches, ShortWindow)} {
		for _, m := range pool {
			if age := now.Sub(m.Date); age >= 0 && age <= freshnessWindow {
				recent++
			}
		}
	}

	return DataQuality{
		Completeness: completeness,
		Reliability:  min(completeness+reliabilityBonus, 100),
		Freshness:    min(recent*freshnessPerMatch, 100),
	}
}

func countValid(matches []match.HistoricalMatch) int {
	count := 0
	for _, m := range window(matches, LongWindow) {
		if IsValidForAnalysis(m) {
			count++
		}
	}
	return count
}
