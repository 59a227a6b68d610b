package match

import (
	"testing"
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
)

func finished(id, homeID, awayID int64, hs, as int, day int) HistoricalMatch {
	return HistoricalMatch{
		ID:       id,
		HomeTeam: Team{ID: homeID},
		AwayTeam: Team{ID: awayID},
		Date:     time.Date(2026, 1, day, 15, 0, 0, 0, time.UTC),
		Status:   StatusFinished,
		Result:   Result{HomeScore: hs, AwayScore: as, TotalGoals: hs + as},
	}
}

func TestComputeLeagueAverages(t *testing.T) {
	t.Parallel()

	withStats := finished(1, 1, 2, 2, 0, 1)
	withStats.StatisticsAvailable = true
	withStats.Statistics.Corners = CornerStats{Home: 6, Away: 5, Total: 11}
	withStats.Statistics.Cards.Yellow = NewSideTotals(2, 2)
	withStats.Statistics.Cards.Red = NewSideTotals(0, 1)

	got := ComputeLeagueAverages(8, []HistoricalMatch{
		withStats,
		finished(2, 2, 3, 1, 1, 2),
		finished(3, 3, 1, 0, 2, 3),
		finished(4, 1, 3, 1, 0, 4),
	})

	if got.GoalsPerMatch != 1.75 {
		t.Fatalf("goals per match: got %.2f", got.GoalsPerMatch)
	}
	if got.CornersPerMatch != 11 || got.CardsPerMatch != 5 {
		t.Fatalf("stats averages should use matches with statistics only: %+v", got)
	}
	if got.HomeWinPercentage != 50 || got.DrawPercentage != 25 || got.AwayWinPercentage != 25 {
		t.Fatalf("unexpected outcome split: %+v", got)
	}
	if got.MatchesSampled != 4 {
		t.Fatalf("unexpected sample size %d", got.MatchesSampled)
	}
}

func TestComputeLeagueAverages_EmptyUsesDefaults(t *testing.T) {
	t.Parallel()

	if got := ComputeLeagueAverages(8, nil); got != leaguestanding.DefaultAverages(8) {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestBuildStandings(t *testing.T) {
	t.Parallel()

	rows := BuildStandings(8, []HistoricalMatch{
		finished(1, 1, 2, 2, 0, 1),
		finished(2, 2, 3, 1, 1, 2),
		finished(3, 3, 1, 0, 2, 3),
		finished(4, 2, 1, 3, 3, 4),
	})

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	top := rows[0]
	if top.TeamID != 1 || top.Position != 1 || top.Points != 7 || top.Won != 2 || top.Draw != 1 {
		t.Fatalf("unexpected leader %+v", top)
	}
	if top.GoalsFor != 7 || top.GoalsAgainst != 3 || top.GoalDifference != 4 {
		t.Fatalf("unexpected goals %+v", top)
	}
	if top.Form != "DWW" {
		t.Fatalf("form should be most recent first, got %q", top.Form)
	}
	if rows[1].TeamID != 2 || rows[1].Points != 2 || rows[2].TeamID != 3 || rows[2].Points != 1 {
		t.Fatalf("unexpected order %+v", rows)
	}
}
