package analysis

// ComputeExpectedStatistics estimates each side as the mean of its own
// last-10 "for" average and the opponent's last-10 "against" average. It is a
// plain attack/defence average, not a calibrated prediction model.
func ComputeExpectedStatistics(home, away FormAnalysis) ExpectedStatistics {
	hg, ag := home.Goals.Last10Matches, away.Goals.Last10Matches
	hc, ac := home.Corners.Last10Matches, away.Corners.Last10Matches
	hk, ak := home.Cards.Last10Matches, away.Cards.Last10Matches

	return ExpectedStatistics{
		Goals:   crossAverage(hg.AverageGoalsFor, ag.AverageGoalsAgainst, ag.AverageGoalsFor, hg.AverageGoalsAgainst),
		Corners: crossAverage(hc.AverageCornersFor, ac.AverageCornersAgainst, ac.AverageCornersFor, hc.AverageCornersAgainst),
		Cards:   crossAverage(hk.AverageCardsFor, ak.AverageCardsAgainst, ak.AverageCardsFor, hk.AverageCardsAgainst),
	}
}

func crossAverage(homeFor, awayAgainst, awayFor, homeAgainst float64) ExpectedValue {
	home := (homeFor + awayAgainst) / 2
	away := (awayFor + homeAgainst) / 2
	return ExpectedValue{
		Home:  round2(home),
		Away:  round2(away),
		Total: round2(home + away),
	}
}
