package analysis

import (
	"testing"
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

var baseDate = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

// played builds a finished match with statistics, dated daysAgo before baseDate.
func played(id, homeID, awayID int64, homeScore, awayScore, daysAgo int) match.HistoricalMatch {
	return match.HistoricalMatch{
		ID:       id,
		HomeTeam: match.Team{ID: homeID, Name: teamName(homeID)},
		AwayTeam: match.Team{ID: awayID, Name: teamName(awayID)},
		Date:     baseDate.AddDate(0, 0, -daysAgo),
		Status:   match.StatusFinished,
		Result: match.Result{
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			TotalGoals: homeScore + awayScore,
		},
		StatisticsAvailable: true,
	}
}

func withCorners(m match.HistoricalMatch, home, away int) match.HistoricalMatch {
	m.Statistics.Corners = match.CornerStats{Home: home, Away: away, Total: home + away}
	return m
}

func withCards(m match.HistoricalMatch, homeYellow, awayYellow, homeRed, awayRed int) match.HistoricalMatch {
	m.Statistics.Cards = match.CardStats{
		Yellow: match.NewSideTotals(homeYellow, awayYellow),
		Red:    match.NewSideTotals(homeRed, awayRed),
		Total:  match.NewSideTotals(homeYellow+homeRed, awayYellow+awayRed),
	}
	return m
}

func teamName(id int64) string {
	switch id {
	case 1:
		return "Arsenal"
	case 2:
		return "Chelsea"
	default:
		return "Opponent"
	}
}

// historyWithTotals builds home matches for team 1 whose total goals follow totals.
func historyWithTotals(totals ...int) []match.HistoricalMatch {
	out := make([]match.HistoricalMatch, 0, len(totals))
	for i, total := range totals {
		home := (total + 1) / 2
		out = append(out, played(int64(100+i), 1, int64(50+i), home, total-home, i*7))
	}
	return out
}

func assertThresholdsSumTo100(t *testing.T, stats []ThresholdStatistic) {
	t.Helper()
	for _, s := range stats {
		if s.TotalMatches == 0 {
			if s.OverPercentage != 0 || s.UnderPercentage != 0 {
				t.Fatalf("line %.1f: empty window must report 0/0, got %d/%d", s.Line, s.OverPercentage, s.UnderPercentage)
			}
			continue
		}
		if s.OverPercentage+s.UnderPercentage != 100 {
			t.Fatalf("line %.1f: percentages sum to %d", s.Line, s.OverPercentage+s.UnderPercentage)
		}
		if s.OverCount+s.UnderCount != s.TotalMatches {
			t.Fatalf("line %.1f: counts %d+%d != %d", s.Line, s.OverCount, s.UnderCount, s.TotalMatches)
		}
	}
}
