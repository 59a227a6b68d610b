package analysis

import "github.com/riskibarqy/match-analysis/internal/domain/match"

// AnalyzeCards counts yellow plus red cards per match.
func AnalyzeCards(matches []match.HistoricalMatch, isHomeTeam bool) CardsAnalysis {
	return CardsAnalysis{
		Last5Matches:  cardsWindow(window(matches, ShortWindow), isHomeTeam),
		Last10Matches: cardsWindow(window(matches, LongWindow), isHomeTeam),
	}
}

func cardsWindow(matches []match.HistoricalMatch, isHomeTeam bool) CardsWindow {
	n := len(matches)
	totals := make([]int, 0, n)
	total, cardsFor, cardsAgainst := 0, 0, 0

	for _, m := range matches {
		cards := m.TotalCards()
		totals = append(totals, cards)
		total += cards
		cardsFor += m.CardsFor(isHomeTeam)
		cardsAgainst += m.CardsFor(!isHomeTeam)
	}

	return CardsWindow{
		Matches:             matches,
		MatchesAnalyzed:     n,
		Thresholds:          ComputeThresholds(totals, CardLines),
		AverageCards:        average(total, n),
		AverageCardsFor:     average(cardsFor, n),
		AverageCardsAgainst: average(cardsAgainst, n),
	}
}
