package analysis

import (
	"testing"
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

func TestComputeExpectedStatistics_CrossAverages(t *testing.T) {
	t.Parallel()

	home := AnalyzeForm([]match.HistoricalMatch{
		withCorners(withCards(played(1, 1, 9, 3, 1, 1), 1, 2, 0, 0), 6, 2),
		withCorners(withCards(played(2, 1, 8, 1, 0, 8), 2, 1, 0, 0), 4, 4),
	}, true)
	away := AnalyzeForm([]match.HistoricalMatch{
		withCorners(withCards(played(3, 7, 2, 2, 1, 2), 3, 1, 0, 0), 5, 3),
		withCorners(withCards(played(4, 6, 2, 2, 2, 9), 1, 1, 0, 1), 7, 5),
	}, false)

	got := ComputeExpectedStatistics(home, away)

	// home for 2.0, away against 2.0; away for 1.5, home against 0.5.
	if got.Goals.Home != 2 || got.Goals.Away != 1 || got.Goals.Total != 3 {
		t.Fatalf("unexpected expected goals: %+v", got.Goals)
	}
	// home for 5, away against 6; away for 4, home against 3.
	if got.Corners.Home != 5.5 || got.Corners.Away != 3.5 || got.Corners.Total != 9 {
		t.Fatalf("unexpected expected corners: %+v", got.Corners)
	}
	// home for 1.5, away against 2; away for 1.5, home against 1.5.
	if got.Cards.Home != 1.75 || got.Cards.Away != 1.5 || got.Cards.Total != 3.25 {
		t.Fatalf("unexpected expected cards: %+v", got.Cards)
	}
}

func TestComputeExpectedStatistics_RoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	home := AnalyzeForm(historyWithTotals(1, 1, 2), true)
	away := AnalyzeForm(nil, false)

	got := ComputeExpectedStatistics(home, away)
	// home goals for = (1+1+1)/3 = 1, home against = (0+0+1)/3.
	if got.Goals.Home != 0.5 || got.Goals.Away != 0.17 {
		t.Fatalf("unexpected rounding: %+v", got.Goals)
	}
}

func TestAssessDataQuality(t *testing.T) {
	t.Parallel()

	now := baseDate
	full := func(n, spacingDays int) []match.HistoricalMatch {
		out := make([]match.HistoricalMatch, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, played(int64(i+1), 1, 9, 1, 0, i*spacingDays))
		}
		return out
	}

	t.Run("complete and fresh", func(t *testing.T) {
		t.Parallel()
		got := AssessDataQuality(full(10, 3), full(10, 3), full(3, 100), now)
		if got.Completeness != 100 || got.Reliability != 100 || got.Freshness != 100 {
			t.Fatalf("unexpected quality: %+v", got)
		}
	})

	t.Run("sparse and stale", func(t *testing.T) {
		t.Parallel()
		got := AssessDataQuality(full(6, 40), full(2, 40), nil, now)
		// only the home threshold is met; each side has one match from today.
		if got.Completeness != 25 || got.Reliability != 45 || got.Freshness != 20 {
			t.Fatalf("unexpected quality: %+v", got)
		}
	})

	t.Run("matches without statistics are not valid", func(t *testing.T) {
		t.Parallel()
		home := full(8, 1)
		for i := range home {
			home[i].StatisticsAvailable = false
		}
		got := AssessDataQuality(home, nil, nil, now)
		// the 8-match window still counts, the valid-match threshold does not.
		if got.Completeness != 25 {
			t.Fatalf("unexpected completeness: %+v", got)
		}
		if got.Freshness != 50 {
			t.Fatalf("five recent home matches should score 50, got %d", got.Freshness)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		got := AssessDataQuality(nil, nil, nil, time.Now())
		if got.Completeness != 0 || got.Reliability != 20 || got.Freshness != 0 {
			t.Fatalf("unexpected quality: %+v", got)
		}
	})
}

func TestNewLeagueContext(t *testing.T) {
	t.Parallel()

	standings := []leaguestanding.Standing{
		{TeamID: 1, Position: 2, Points: 40},
		{TeamID: 2, Position: 7, Points: 31},
	}
	averages := leaguestanding.DefaultAverages(8)

	got := NewLeagueContext(8, averages, standings, 1, 2)
	if got.Standings == nil || got.Standings.PointsGap != 9 || got.Standings.HomeTeamPosition != 2 {
		t.Fatalf("unexpected standings context: %+v", got.Standings)
	}
	if got.HomeAdvantage.HomeWinPercentage != 45 || got.LeagueAverages.GoalsPerMatch != 2.7 {
		t.Fatalf("unexpected averages: %+v", got)
	}

	if NewLeagueContext(8, averages, nil, 1, 2).Standings != nil {
		t.Fatalf("standings context requires both teams to be ranked")
	}
}
