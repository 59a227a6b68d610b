package analysis

import "github.com/riskibarqy/match-analysis/internal/domain/match"

// AnalyzeForm runs the goals, cards and corners modules over one history.
func AnalyzeForm(matches []match.HistoricalMatch, isHomeTeam bool) FormAnalysis {
	return FormAnalysis{
		Goals:   AnalyzeGoals(matches, isHomeTeam),
		Cards:   AnalyzeCards(matches, isHomeTeam),
		Corners: AnalyzeCorners(matches, isHomeTeam),
	}
}

// NewTeamFormAnalysis analyzes a team in its requested role. The team snapshot
// is taken from the most recent match when one exists.
func NewTeamFormAnalysis(teamID int64, matches []match.HistoricalMatch, isHomeTeam bool) TeamFormAnalysis {
	out := TeamFormAnalysis{Team: resolveTeam(teamID, matches)}
	form := AnalyzeForm(matches, isHomeTeam)
	if isHomeTeam {
		out.HomeForm = &form
	} else {
		out.AwayForm = &form
	}
	return out
}

func resolveTeam(teamID int64, matches []match.HistoricalMatch) match.Team {
	for _, m := range matches {
		switch teamID {
		case m.HomeTeam.ID:
			return m.HomeTeam
		case m.AwayTeam.ID:
			return m.AwayTeam
		}
	}
	return match.Team{ID: teamID}
}
