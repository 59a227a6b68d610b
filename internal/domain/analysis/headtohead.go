package analysis

import "github.com/riskibarqy/match-analysis/internal/domain/match"

// AnalyzeHeadToHead summarizes meetings between the requested home and away
// teams. Wins are attributed by team identity, not by the venue of the meeting.
func AnalyzeHeadToHead(meetings []match.HistoricalMatch, homeTeamID, awayTeamID int64) HeadToHeadAnalysis {
	between := make([]match.HistoricalMatch, 0, len(meetings))
	for _, m := range meetings {
		if m.Involves(homeTeamID) && m.Involves(awayTeamID) {
			between = append(between, m)
		}
	}

	return HeadToHeadAnalysis{
		Last5Meetings:  summarizeMeetings(window(between, ShortWindow), homeTeamID, awayTeamID),
		Last10Meetings: summarizeMeetings(window(between, LongWindow), homeTeamID, awayTeamID),
	}
}

// EmptyHeadToHead is substituted when meetings could not be fetched.
func EmptyHeadToHead() HeadToHeadAnalysis {
	return AnalyzeHeadToHead(nil, 0, 0)
}

func summarizeMeetings(meetings []match.HistoricalMatch, homeTeamID, awayTeamID int64) MeetingsSummary {
	out := MeetingsSummary{Matches: meetings, TotalMatches: len(meetings)}
	goals, cards, corners := 0, 0, 0

	for _, m := range meetings {
		switch m.WinnerID() {
		case 0:
			out.Draws++
		case homeTeamID:
			out.HomeTeamWins++
		case awayTeamID:
			out.AwayTeamWins++
		}
		goals += m.Result.HomeScore + m.Result.AwayScore
		cards += m.TotalCards()
		corners += m.Statistics.Corners.Total
	}

	n := len(meetings)
	out.AverageGoals = average(goals, n)
	out.AverageCards = average(cards, n)
	out.AverageCorners = average(corners, n)
	return out
}

// NewVenueRecord tallies a team's results over a venue-specific sample. It
// returns nil when the sample is empty.
func NewVenueRecord(teamID int64, matches []match.HistoricalMatch) *VenueRecord {
	if len(matches) == 0 {
		return nil
	}

	out := &VenueRecord{TeamID: teamID}
	goals, corners, cards := 0, 0, 0
	for _, m := range matches {
		if !m.Involves(teamID) {
			continue
		}
		out.Played++
		isHome := m.IsHome(teamID)
		out.GoalsFor += m.GoalsFor(isHome)
		out.GoalsAgainst += m.GoalsAgainst(isHome)

		switch m.WinnerID() {
		case 0:
			out.Draws++
		case teamID:
			out.Wins++
		default:
			out.Losses++
		}
		goals += m.Result.HomeScore + m.Result.AwayScore
		corners += m.Statistics.Corners.Total
		cards += m.TotalCards()
	}
	if out.Played == 0 {
		return nil
	}

	out.AverageGoals = average(goals, out.Played)
	out.AverageCorners = average(corners, out.Played)
	out.AverageCards = average(cards, out.Played)
	return out
}
