package analysis

import (
	"math"
	"testing"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

func TestAnalyzeGoals_ShortHistoryScenario(t *testing.T) {
	t.Parallel()

	got := AnalyzeGoals(historyWithTotals(2, 1, 3, 0, 2, 1, 4), true)

	if got.Last5Matches.MatchesAnalyzed != 5 {
		t.Fatalf("last5 should use 5 matches, got %d", got.Last5Matches.MatchesAnalyzed)
	}
	if got.Last5Matches.AverageGoals != 1.6 {
		t.Fatalf("last5 average should be 1.6, got %v", got.Last5Matches.AverageGoals)
	}
	if got.Last10Matches.MatchesAnalyzed != 7 {
		t.Fatalf("last10 should use all 7 matches, got %d", got.Last10Matches.MatchesAnalyzed)
	}
	if want := 13.0 / 7.0; math.Abs(got.Last10Matches.AverageGoals-want) > 1e-9 {
		t.Fatalf("last10 average should be %v, got %v", want, got.Last10Matches.AverageGoals)
	}
	if len(got.Last10Matches.Matches) != 7 {
		t.Fatalf("window must carry the matches used, got %d", len(got.Last10Matches.Matches))
	}
}

func TestAnalyzeGoals_Thresholds(t *testing.T) {
	t.Parallel()

	got := AnalyzeGoals(historyWithTotals(2, 1, 3, 0, 2, 1, 4), true)

	last5 := got.Last5Matches.Thresholds
	if len(last5) != len(GoalLines) {
		t.Fatalf("expected %d lines, got %d", len(GoalLines), len(last5))
	}
	byLine := map[float64]ThresholdStatistic{}
	for _, s := range last5 {
		byLine[s.Line] = s
	}
	if s := byLine[2.5]; s.OverCount != 1 || s.UnderCount != 4 || s.OverPercentage != 20 || s.UnderPercentage != 80 {
		t.Fatalf("unexpected over/under 2.5: %+v", s)
	}
	if s := byLine[0.5]; s.OverCount != 4 || s.OverPercentage != 80 {
		t.Fatalf("unexpected over/under 0.5: %+v", s)
	}

	assertThresholdsSumTo100(t, last5)
	assertThresholdsSumTo100(t, got.Last10Matches.Thresholds)
}

func TestAnalyzeGoals_ForAgainstFollowsRole(t *testing.T) {
	t.Parallel()

	matches := []match.HistoricalMatch{
		played(1, 1, 9, 3, 1, 1),
		played(2, 1, 8, 1, 1, 8),
	}

	home := AnalyzeGoals(matches, true).Last5Matches
	if home.AverageGoalsFor != 2 || home.AverageGoalsAgainst != 1 {
		t.Fatalf("home role: for=%v against=%v", home.AverageGoalsFor, home.AverageGoalsAgainst)
	}
	away := AnalyzeGoals(matches, false).Last5Matches
	if away.AverageGoalsFor != 1 || away.AverageGoalsAgainst != 2 {
		t.Fatalf("away role: for=%v against=%v", away.AverageGoalsFor, away.AverageGoalsAgainst)
	}
	if home.BothTeamsScoredPercentage != 100 {
		t.Fatalf("both matches had both sides scoring, got %d%%", home.BothTeamsScoredPercentage)
	}
}

func TestAnalyzeGoals_EmptyHistory(t *testing.T) {
	t.Parallel()

	got := AnalyzeGoals(nil, true)
	for _, w := range []GoalsWindow{got.Last5Matches, got.Last10Matches} {
		if w.MatchesAnalyzed != 0 || w.AverageGoals != 0 || w.AverageGoalsFor != 0 || w.AverageGoalsAgainst != 0 {
			t.Fatalf("empty history must produce zero window, got %+v", w)
		}
		if w.Thresholds == nil || len(w.Thresholds) != 0 {
			t.Fatalf("empty history must produce an empty threshold list, got %v", w.Thresholds)
		}
		if w.Matches == nil {
			t.Fatalf("matches should be an empty list, not nil")
		}
	}
}

func TestAnalyzeGoals_WindowSizes(t *testing.T) {
	t.Parallel()

	for available := 0; available <= 14; available++ {
		totals := make([]int, available)
		for i := range totals {
			totals[i] = i % 5
		}
		got := AnalyzeGoals(historyWithTotals(totals...), true)
		if want := min(ShortWindow, available); got.Last5Matches.MatchesAnalyzed != want {
			t.Fatalf("available=%d last5 used %d want %d", available, got.Last5Matches.MatchesAnalyzed, want)
		}
		if want := min(LongWindow, available); got.Last10Matches.MatchesAnalyzed != want {
			t.Fatalf("available=%d last10 used %d want %d", available, got.Last10Matches.MatchesAnalyzed, want)
		}
	}
}

func TestAnalyzeGoals_AveragesScaleLinearly(t *testing.T) {
	t.Parallel()

	base := []match.HistoricalMatch{
		played(1, 1, 9, 2, 1, 1),
		played(2, 1, 8, 0, 1, 8),
		played(3, 1, 7, 3, 3, 15),
	}
	doubled := make([]match.HistoricalMatch, len(base))
	for i, m := range base {
		m.Result.HomeScore *= 2
		m.Result.AwayScore *= 2
		doubled[i] = m
	}

	a := AnalyzeGoals(base, true).Last10Matches
	b := AnalyzeGoals(doubled, true).Last10Matches
	if math.Abs(b.AverageGoals-2*a.AverageGoals) > 1e-9 ||
		math.Abs(b.AverageGoalsFor-2*a.AverageGoalsFor) > 1e-9 ||
		math.Abs(b.AverageGoalsAgainst-2*a.AverageGoalsAgainst) > 1e-9 {
		t.Fatalf("doubling values must double averages: base=%+v doubled=%+v", a, b)
	}
}
