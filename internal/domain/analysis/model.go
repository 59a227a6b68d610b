package analysis

import (
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

// Provenance values reported per enrichment section.
const (
	SourceProvider     = "provider"
	SourceUnavailable  = "unavailable"
	SourceDefault      = "default"
	SourceNotRequested = "not_requested"
)

type ThresholdStatistic struct {
	Line            float64 `json:"line"`
	OverCount       int     `json:"overCount"`
	UnderCount      int     `json:"underCount"`
	TotalMatches    int     `json:"totalMatches"`
	OverPercentage  int     `json:"overPercentage"`
	UnderPercentage int     `json:"underPercentage"`
}

type GoalsWindow struct {
	Matches                   []match.HistoricalMatch `json:"matches"`
	MatchesAnalyzed           int                     `json:"matchesAnalyzed"`
	Thresholds                []ThresholdStatistic    `json:"thresholds"`
	AverageGoals              float64                 `json:"averageGoals"`
	AverageGoalsFor           float64                 `json:"averageGoalsFor"`
	AverageGoalsAgainst       float64                 `json:"averageGoalsAgainst"`
	BothTeamsScoredPercentage int                     `json:"bothTeamsScoredPercentage"`
}

type GoalsAnalysis struct {
	Last5Matches  GoalsWindow `json:"last5Matches"`
	Last10Matches GoalsWindow `json:"last10Matches"`
}

type CardsWindow struct {
	Matches             []match.HistoricalMatch `json:"matches"`
	MatchesAnalyzed     int                     `json:"matchesAnalyzed"`
	Thresholds          []ThresholdStatistic    `json:"thresholds"`
	AverageCards        float64                 `json:"averageCards"`
	AverageCardsFor     float64                 `json:"averageCardsFor"`
	AverageCardsAgainst float64                 `json:"averageCardsAgainst"`
}

type CardsAnalysis struct {
	Last5Matches  CardsWindow `json:"last5Matches"`
	Last10Matches CardsWindow `json:"last10Matches"`
}

type CornersWindow struct {
	Matches                  []match.HistoricalMatch `json:"matches"`
	MatchesAnalyzed          int                     `json:"matchesAnalyzed"`
	Thresholds               []ThresholdStatistic    `json:"thresholds"`
	AverageCorners           float64                 `json:"averageCorners"`
	AverageCornersFor        float64                 `json:"averageCornersFor"`
	AverageCornersAgainst    float64                 `json:"averageCornersAgainst"`
	FirstHalfAverageCorners  float64                 `json:"firstHalfAverageCorners"`
	SecondHalfAverageCorners float64                 `json:"secondHalfAverageCorners"`
}

type CornersAnalysis struct {
	Last5Matches  CornersWindow `json:"last5Matches"`
	Last10Matches CornersWindow `json:"last10Matches"`
}

type FormAnalysis struct {
	Goals   GoalsAnalysis   `json:"goals"`
	Cards   CardsAnalysis   `json:"cards"`
	Corners CornersAnalysis `json:"corners"`
}

// TeamFormAnalysis carries HomeForm for the requested home side and AwayForm
// for the requested away side; the other field stays nil.
type TeamFormAnalysis struct {
	Team     match.Team    `json:"team"`
	HomeForm *FormAnalysis `json:"homeForm,omitempty"`
	AwayForm *FormAnalysis `json:"awayForm,omitempty"`
}

type MeetingsSummary struct {
	Matches        []match.HistoricalMatch `json:"matches"`
	TotalMatches   int                     `json:"totalMatches"`
	HomeTeamWins   int                     `json:"homeTeamWins"`
	AwayTeamWins   int                     `json:"awayTeamWins"`
	Draws          int                     `json:"draws"`
	AverageGoals   float64                 `json:"averageGoals"`
	AverageCards   float64                 `json:"averageCards"`
	AverageCorners float64                 `json:"averageCorners"`
}

type VenueRecord struct {
	TeamID         int64   `json:"teamId"`
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	AverageGoals   float64 `json:"averageGoals"`
	AverageCorners float64 `json:"averageCorners"`
	AverageCards   float64 `json:"averageCards"`
}

type HeadToHeadAnalysis struct {
	Last5Meetings      MeetingsSummary `json:"last5Meetings"`
	Last10Meetings     MeetingsSummary `json:"last10Meetings"`
	HomeTeamHomeRecord *VenueRecord    `json:"homeTeamHomeRecord,omitempty"`
	AwayTeamAwayRecord *VenueRecord    `json:"awayTeamAwayRecord,omitempty"`
}

type StandingsContext struct {
	HomeTeamPosition int `json:"homeTeamPosition"`
	AwayTeamPosition int `json:"awayTeamPosition"`
	HomeTeamPoints   int `json:"homeTeamPoints"`
	AwayTeamPoints   int `json:"awayTeamPoints"`
	PointsGap        int `json:"pointsGap"`
}

type LeagueAverages struct {
	GoalsPerMatch   float64 `json:"goalsPerMatch"`
	CardsPerMatch   float64 `json:"cardsPerMatch"`
	CornersPerMatch float64 `json:"cornersPerMatch"`
	MatchesSampled  int     `json:"matchesSampled"`
}

type HomeAdvantage struct {
	HomeWinPercentage float64 `json:"homeWinPercentage"`
	AwayWinPercentage float64 `json:"awayWinPercentage"`
	DrawPercentage    float64 `json:"drawPercentage"`
}

type LeagueContextAnalysis struct {
	LeagueID       int64             `json:"leagueId,omitempty"`
	Standings      *StandingsContext `json:"standings,omitempty"`
	LeagueAverages LeagueAverages    `json:"leagueAverages"`
	HomeAdvantage  HomeAdvantage     `json:"homeAdvantage"`
}

type ExpectedValue struct {
	Home  float64 `json:"home"`
	Away  float64 `json:"away"`
	Total float64 `json:"total"`
}

type ExpectedStatistics struct {
	Goals   ExpectedValue `json:"goals"`
	Corners ExpectedValue `json:"corners"`
	Cards   ExpectedValue `json:"cards"`
}

type DataQuality struct {
	Completeness int `json:"completeness"`
	Reliability  int `json:"reliability"`
	Freshness    int `json:"freshness"`
}

type Sources struct {
	HeadToHead    string `json:"headToHead"`
	VenueRecords  string `json:"venueRecords"`
	LeagueContext string `json:"leagueContext"`
	ExpectedStats string `json:"expectedStatistics"`
}

type MatchIdentity struct {
	HomeTeamID int64  `json:"homeTeamId"`
	AwayTeamID int64  `json:"awayTeamId"`
	LeagueID   int64  `json:"leagueId,omitempty"`
	MatchDate  string `json:"matchDate,omitempty"`
}

// ComprehensiveMatchAnalysis is the aggregate produced for one fixture.
type ComprehensiveMatchAnalysis struct {
	Match              MatchIdentity         `json:"match"`
	HomeTeamAnalysis   TeamFormAnalysis      `json:"homeTeamAnalysis"`
	AwayTeamAnalysis   TeamFormAnalysis      `json:"awayTeamAnalysis"`
	HeadToHead         HeadToHeadAnalysis    `json:"headToHead"`
	LeagueContext      LeagueContextAnalysis `json:"leagueContext"`
	ExpectedStatistics *ExpectedStatistics   `json:"expectedStatistics,omitempty"`
	GeneratedAt        time.Time             `json:"generatedAt"`
	DataQuality        DataQuality           `json:"dataQuality"`
	Sources            Sources               `json:"sources"`
}

// NewLeagueContext folds standings and league averages into the analysis view.
// Standings may be empty; positions are only reported when both teams are ranked.
func NewLeagueContext(leagueID int64, averages leaguestanding.Averages, standings []leaguestanding.Standing, homeTeamID, awayTeamID int64) LeagueContextAnalysis {
	out := LeagueContextAnalysis{
		LeagueID: leagueID,
		LeagueAverages: LeagueAverages{
			GoalsPerMatch:   averages.GoalsPerMatch,
			CardsPerMatch:   averages.CardsPerMatch,
			CornersPerMatch: averages.CornersPerMatch,
			MatchesSampled:  averages.MatchesSampled,
		},
		HomeAdvantage: HomeAdvantage{
			HomeWinPercentage: averages.HomeWinPercentage,
			AwayWinPercentage: averages.AwayWinPercentage,
			DrawPercentage:    averages.DrawPercentage,
		},
	}

	home, homeOK := leaguestanding.FindTeam(standings, homeTeamID)
	away, awayOK := leaguestanding.FindTeam(standings, awayTeamID)
	if homeOK && awayOK {
		gap := home.Points - away.Points
		if gap < 0 {
			gap = -gap
		}
		out.Standings = &StandingsContext{
			HomeTeamPosition: home.Position,
			AwayTeamPosition: away.Position,
			HomeTeamPoints:   home.Points,
			AwayTeamPoints:   away.Points,
			PointsGap:        gap,
		}
	}
	return out
}
