package memory

import (
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

const (
	LeagueIDLiga1Indonesia int64 = 1001
	LeagueIDPremierLeague  int64 = 8
)

func SeedLeagues() []match.League {
	return []match.League{
		{ID: LeagueIDLiga1Indonesia, Name: "Liga 1 Indonesia", Country: "Indonesia", Season: "2025/2026"},
		{ID: LeagueIDPremierLeague, Name: "Premier League", Country: "England", Season: "2025/2026"},
	}
}

type seedTeam struct {
	team  match.Team
	venue string
}

func seedTeams() []seedTeam {
	return []seedTeam{
		{team: match.Team{ID: 7001, LeagueID: LeagueIDLiga1Indonesia, Name: "Persija Jakarta", ShortName: "PSJ", Country: "Indonesia"}, venue: "Jakarta International Stadium"},
		{team: match.Team{ID: 7002, LeagueID: LeagueIDLiga1Indonesia, Name: "Persib Bandung", ShortName: "PSB", Country: "Indonesia"}, venue: "Gelora Bandung Lautan Api"},
		{team: match.Team{ID: 7003, LeagueID: LeagueIDLiga1Indonesia, Name: "Persebaya Surabaya", ShortName: "PRB", Country: "Indonesia"}, venue: "Gelora Bung Tomo"},
		{team: match.Team{ID: 7004, LeagueID: LeagueIDLiga1Indonesia, Name: "Bali United", ShortName: "BU", Country: "Indonesia"}, venue: "Kapten I Wayan Dipta"},
		{team: match.Team{ID: 19, LeagueID: LeagueIDPremierLeague, Name: "Arsenal", ShortName: "ARS", Country: "England"}, venue: "Emirates Stadium"},
		{team: match.Team{ID: 8, LeagueID: LeagueIDPremierLeague, Name: "Liverpool", ShortName: "LIV", Country: "England"}, venue: "Anfield"},
		{team: match.Team{ID: 18, LeagueID: LeagueIDPremierLeague, Name: "Chelsea", ShortName: "CHE", Country: "England"}, venue: "Stamford Bridge"},
		{team: match.Team{ID: 9, LeagueID: LeagueIDPremierLeague, Name: "Manchester City", ShortName: "MCI", Country: "England"}, venue: "Etihad Stadium"},
	}
}

// SeedTeams lists the teams the seeded history covers.
func SeedTeams() []match.Team {
	rows := seedTeams()
	out := make([]match.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.team)
	}
	return out
}

// SeedMatches builds a deterministic history: every pair of teams in a league
// meets home and away in each of three seasons, one round per week, ending on
// the week before anchor. Every seventh fixture has no statistics block.
func SeedMatches(anchor time.Time) []match.HistoricalMatch {
	leagues := make(map[int64]match.League)
	for _, l := range SeedLeagues() {
		leagues[l.ID] = l
	}

	byLeague := make(map[int64][]seedTeam)
	var order []int64
	for _, row := range seedTeams() {
		if _, ok := byLeague[row.team.LeagueID]; !ok {
			order = append(order, row.team.LeagueID)
		}
		byLeague[row.team.LeagueID] = append(byLeague[row.team.LeagueID], row)
	}

	var out []match.HistoricalMatch
	nextID := int64(900_000)
	for _, leagueID := range order {
		teams := byLeague[leagueID]
		var pairs [][2]seedTeam
		for season := 0; season < 3; season++ {
			for i := range teams {
				for j := range teams {
					if i != j {
						pairs = append(pairs, [2]seedTeam{teams[i], teams[j]})
					}
				}
			}
		}

		kickoff := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 15, 0, 0, 0, time.UTC).AddDate(0, 0, -7)
		for n := len(pairs) - 1; n >= 0; n-- {
			home, away := pairs[n][0], pairs[n][1]
			nextID++
			out = append(out, seedMatch(nextID, leagues[leagueID], home, away, kickoff, n))
			if n%2 == 0 {
				kickoff = kickoff.AddDate(0, 0, -7)
			}
		}
	}
	return out
}

func seedMatch(id int64, league match.League, home, away seedTeam, kickoff time.Time, n int) match.HistoricalMatch {
	hs := int((home.team.ID*3 + int64(n)) % 4)
	as := int((away.team.ID + int64(n)*2) % 3)
	m := match.HistoricalMatch{
		ID:       id,
		HomeTeam: home.team,
		AwayTeam: away.team,
		League:   league,
		Date:     kickoff,
		Status:   match.StatusFinished,
		Venue:    home.venue,
		Season:   league.Season,
		Result: match.Result{
			HomeScore:  hs,
			AwayScore:  as,
			TotalGoals: hs + as,
			HalfTime:   &match.Score{Home: hs / 2, Away: as / 2},
		},
	}
	if id%7 == 0 {
		return m
	}

	homeCorners := 3 + n%5
	awayCorners := 2 + (n+int(away.team.ID))%4
	firstHome, firstAway := homeCorners/2, awayCorners/2
	first := match.NewSideTotals(firstHome, firstAway)
	second := match.NewSideTotals(homeCorners-firstHome, awayCorners-firstAway)
	m.StatisticsAvailable = true
	m.Statistics = match.Statistics{
		Corners: match.CornerStats{
			Home:       homeCorners,
			Away:       awayCorners,
			Total:      homeCorners + awayCorners,
			FirstHalf:  &first,
			SecondHalf: &second,
		},
	}
	yellow := match.NewSideTotals(1+n%3, (n+1)%4)
	red := match.NewSideTotals(0, 0)
	if n%11 == 0 {
		red = match.NewSideTotals(0, 1)
	}
	m.Statistics.Cards = match.CardStats{
		Yellow: yellow,
		Red:    red,
		Total:  match.NewSideTotals(yellow.Home+red.Home, yellow.Away+red.Away),
	}
	return m
}
