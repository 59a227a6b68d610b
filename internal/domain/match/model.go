package match

import "time"

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
	StatusPostponed = "postponed"
	StatusCancelled = "cancelled"
)

type Team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	LogoURL   string `json:"logoUrl,omitempty"`
	Country   string `json:"country,omitempty"`
	LeagueID  int64  `json:"leagueId,omitempty"`
}

type League struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Season  string `json:"season,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type Result struct {
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	TotalGoals int    `json:"totalGoals"`
	HalfTime   *Score `json:"halfTime,omitempty"`
}

// SideTotals holds one counter split by side.
type SideTotals struct {
	Home  int `json:"home"`
	Away  int `json:"away"`
	Total int `json:"total"`
}

func NewSideTotals(home, away int) SideTotals {
	return SideTotals{Home: home, Away: away, Total: home + away}
}

type CornerStats struct {
	Home       int         `json:"home"`
	Away       int         `json:"away"`
	Total      int         `json:"total"`
	FirstHalf  *SideTotals `json:"firstHalf,omitempty"`
	SecondHalf *SideTotals `json:"secondHalf,omitempty"`
}

// HasHalfSplit reports whether both halves were provided.
func (c CornerStats) HasHalfSplit() bool {
	return c.FirstHalf != nil && c.SecondHalf != nil
}

type CardStats struct {
	Yellow SideTotals `json:"yellowCards"`
	Red    SideTotals `json:"redCards"`
	Total  SideTotals `json:"totalCards"`
}

type FloatPair struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

type Statistics struct {
	Corners    CornerStats `json:"corners"`
	Cards      CardStats   `json:"cards"`
	Fouls      *SideTotals `json:"fouls,omitempty"`
	Shots      *SideTotals `json:"shots,omitempty"`
	Possession *FloatPair  `json:"possession,omitempty"`
	ExpectedXG *FloatPair  `json:"expectedGoals,omitempty"`
}

type PlayerStat struct {
	PlayerID int64  `json:"playerId"`
	TeamID   int64  `json:"teamId"`
	Name     string `json:"name"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	Yellow   int    `json:"yellowCards"`
	Red      int    `json:"redCards"`
	Minutes  int    `json:"minutesPlayed"`
}

// HistoricalMatch is the normalized snapshot of one played or scheduled match.
type HistoricalMatch struct {
	ID                  int64        `json:"id"`
	HomeTeam            Team         `json:"homeTeam"`
	AwayTeam            Team         `json:"awayTeam"`
	League              League       `json:"league"`
	Date                time.Time    `json:"date"`
	Status              string       `json:"status"`
	Venue               string       `json:"venue,omitempty"`
	Referee             string       `json:"referee,omitempty"`
	Season              string       `json:"season,omitempty"`
	Result              Result       `json:"result"`
	Statistics          Statistics   `json:"statistics"`
	StatisticsAvailable bool         `json:"statisticsAvailable"`
	PlayerStats         []PlayerStat `json:"playerStats,omitempty"`
}

func (m HistoricalMatch) IsFinished() bool {
	return m.Status == StatusFinished
}

func (m HistoricalMatch) Involves(teamID int64) bool {
	return m.HomeTeam.ID == teamID || m.AwayTeam.ID == teamID
}

func (m HistoricalMatch) IsHome(teamID int64) bool {
	return m.HomeTeam.ID == teamID
}

// WinnerID returns the winning team id, or 0 for a draw.
func (m HistoricalMatch) WinnerID() int64 {
	switch {
	case m.Result.HomeScore > m.Result.AwayScore:
		return m.HomeTeam.ID
	case m.Result.AwayScore > m.Result.HomeScore:
		return m.AwayTeam.ID
	default:
		return 0
	}
}

// TotalCards counts yellow plus red cards of both sides.
func (m HistoricalMatch) TotalCards() int {
	return m.Statistics.Cards.Yellow.Total + m.Statistics.Cards.Red.Total
}

// GoalsFor returns the goals scored by the side selected by isHome.
func (m HistoricalMatch) GoalsFor(isHome bool) int {
	if isHome {
		return m.Result.HomeScore
	}
	return m.Result.AwayScore
}

func (m HistoricalMatch) GoalsAgainst(isHome bool) int {
	return m.GoalsFor(!isHome)
}

// CardsFor returns the cards shown to the side selected by isHome.
func (m HistoricalMatch) CardsFor(isHome bool) int {
	if isHome {
		return m.Statistics.Cards.Yellow.Home + m.Statistics.Cards.Red.Home
	}
	return m.Statistics.Cards.Yellow.Away + m.Statistics.Cards.Red.Away
}

func (m HistoricalMatch) CornersFor(isHome bool) int {
	if isHome {
		return m.Statistics.Corners.Home
	}
	return m.Statistics.Corners.Away
}
