package analysis

import (
	"testing"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

func TestAnalyzeCards(t *testing.T) {
	t.Parallel()

	matches := []match.HistoricalMatch{
		withCards(played(1, 1, 9, 1, 0, 1), 2, 3, 0, 1), // 6 cards, 2 for
		withCards(played(2, 1, 8, 1, 0, 8), 1, 1, 0, 0), // 2 cards, 1 for
	}

	got := AnalyzeCards(matches, true).Last5Matches
	if got.MatchesAnalyzed != 2 {
		t.Fatalf("expected 2 matches, got %d", got.MatchesAnalyzed)
	}
	if got.AverageCards != 4 || got.AverageCardsFor != 1.5 || got.AverageCardsAgainst != 2.5 {
		t.Fatalf("unexpected averages: %+v", got)
	}
	if len(got.Thresholds) != len(CardLines) {
		t.Fatalf("expected %d lines, got %d", len(CardLines), len(got.Thresholds))
	}
	if first := got.Thresholds[0]; first.Line != 1.5 || first.OverCount != 2 {
		t.Fatalf("both matches exceed 1.5 cards: %+v", first)
	}
	assertThresholdsSumTo100(t, got.Thresholds)

	away := AnalyzeCards(matches, false).Last5Matches
	if away.AverageCardsFor != 2.5 || away.AverageCardsAgainst != 1.5 {
		t.Fatalf("away role should swap for/against: %+v", away)
	}
}

func TestAnalyzeCorners_HalfSplitUsesOnlyMatchesWithSplit(t *testing.T) {
	t.Parallel()

	split := withCorners(played(1, 1, 9, 1, 0, 1), 6, 4)
	split.Statistics.Corners.FirstHalf = &match.SideTotals{Home: 2, Away: 2, Total: 4}
	split.Statistics.Corners.SecondHalf = &match.SideTotals{Home: 4, Away: 2, Total: 6}
	noSplit := withCorners(played(2, 1, 8, 1, 0, 8), 5, 3)

	got := AnalyzeCorners([]match.HistoricalMatch{split, noSplit}, true).Last10Matches
	if got.AverageCorners != 9 {
		t.Fatalf("average corners should be 9, got %v", got.AverageCorners)
	}
	if got.AverageCornersFor != 5.5 || got.AverageCornersAgainst != 3.5 {
		t.Fatalf("unexpected for/against: %+v", got)
	}
	if got.FirstHalfAverageCorners != 4 || got.SecondHalfAverageCorners != 6 {
		t.Fatalf("half averages must divide by matches with a split: first=%v second=%v",
			got.FirstHalfAverageCorners, got.SecondHalfAverageCorners)
	}
	assertThresholdsSumTo100(t, got.Thresholds)
}

func TestAnalyzeCorners_ZeroedStatisticsStillCount(t *testing.T) {
	t.Parallel()

	missing := played(1, 1, 9, 1, 0, 1)
	missing.StatisticsAvailable = false
	matches := []match.HistoricalMatch{withCorners(played(2, 1, 8, 1, 0, 8), 6, 4), missing}

	got := AnalyzeCorners(matches, true).Last5Matches
	if got.MatchesAnalyzed != 2 || got.AverageCorners != 5 {
		t.Fatalf("match without statistics contributes zero but is counted: %+v", got)
	}
}

func TestAnalyzeCornersAndCards_Empty(t *testing.T) {
	t.Parallel()

	corners := AnalyzeCorners(nil, false)
	cards := AnalyzeCards(nil, false)
	if corners.Last10Matches.AverageCorners != 0 || len(corners.Last10Matches.Thresholds) != 0 {
		t.Fatalf("empty corners window expected, got %+v", corners.Last10Matches)
	}
	if cards.Last10Matches.AverageCards != 0 || len(cards.Last10Matches.Thresholds) != 0 {
		t.Fatalf("empty cards window expected, got %+v", cards.Last10Matches)
	}
}

func TestNewTeamFormAnalysis_RoleSelectsForm(t *testing.T) {
	t.Parallel()

	matches := []match.HistoricalMatch{played(1, 1, 9, 2, 0, 1)}

	home := NewTeamFormAnalysis(1, matches, true)
	if home.HomeForm == nil || home.AwayForm != nil {
		t.Fatalf("home role should only populate homeForm")
	}
	if home.Team.Name != "Arsenal" {
		t.Fatalf("team snapshot should come from the match, got %+v", home.Team)
	}

	away := NewTeamFormAnalysis(2, nil, false)
	if away.AwayForm == nil || away.HomeForm != nil {
		t.Fatalf("away role should only populate awayForm")
	}
	if away.Team.ID != 2 {
		t.Fatalf("unknown team should keep its id, got %+v", away.Team)
	}
}
