package sportmonks

import (
	"strings"
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

// Statistic kinds recognized in provider payloads.
const (
	statCorners    = "corners"
	statYellow     = "yellow"
	statRed        = "red"
	statFouls      = "fouls"
	statShots      = "shots"
	statPossession = "possession"
	statXG         = "xg"
)

var statKindByTypeID = map[int64]string{
	34:   statCorners,
	42:   statShots,
	45:   statPossession,
	56:   statFouls,
	83:   statRed,
	84:   statYellow,
	85:   statRed,
	5304: statXG,
}

const refereeMainTypeID = 6

// normalizeFixture maps one provider fixture into the canonical model. The
// provider shape is loose: participants may arrive as a relation list or as flat
// home/away objects, keys may be snake_case or camelCase and statistics may be
// keyed by type id or by name. It reports false only when the fixture cannot be
// identified.
func normalizeFixture(item map[string]any) (match.HistoricalMatch, bool) {
	id := getInt64Any(item, "id", "fixture_id", "fixtureId")
	if id <= 0 {
		return match.HistoricalMatch{}, false
	}

	league := normalizeLeague(item)
	home, away := normalizeParticipants(item, league.ID)
	if home.ID <= 0 || away.ID <= 0 {
		return match.HistoricalMatch{}, false
	}

	out := match.HistoricalMatch{
		ID:       id,
		HomeTeam: home,
		AwayTeam: away,
		League:   league,
		Date:     normalizeDate(item),
		Status:   normalizeStatus(item),
		Venue:    normalizeVenue(item),
		Referee:  normalizeReferee(item),
		Season:   league.Season,
		Result:   normalizeResult(item, home.ID, away.ID),
	}
	out.Statistics, out.StatisticsAvailable = normalizeStatistics(item, home.ID, away.ID)
	out.PlayerStats = normalizePlayerStats(item)
	return out, true
}

func normalizeLeague(item map[string]any) match.League {
	raw := relationDataMap(lookupAny(item, "league", "competition"))
	out := match.League{
		ID:      getInt64Any(raw, "id"),
		Name:    getStringAny(raw, "name"),
		LogoURL: getStringAny(raw, "image_path", "imagePath", "logo"),
		Country: getStringAny(relationDataMap(lookupAny(raw, "country")), "name"),
	}
	if out.ID <= 0 {
		out.ID = getInt64Any(item, "league_id", "leagueId")
	}

	season := relationDataMap(lookupAny(item, "season"))
	out.Season = firstNonEmpty(getStringAny(season, "name"), getStringAny(item, "season_name", "seasonName"))
	if out.Season == "" {
		if s, ok := lookupAny(item, "season").(string); ok {
			out.Season = strings.TrimSpace(s)
		}
	}
	return out
}

func normalizeParticipants(item map[string]any, leagueID int64) (match.Team, match.Team) {
	var home, away match.Team
	for _, p := range relationDataList(lookupAny(item, "participants", "teams")) {
		location := strings.ToLower(firstNonEmpty(
			getString(relationDataMap(p["meta"]), "location"),
			getStringAny(p, "location", "side"),
		))
		switch location {
		case "home":
			home = normalizeTeam(p, leagueID)
		case "away":
			away = normalizeTeam(p, leagueID)
		}
	}

	if home.ID <= 0 {
		if raw := relationDataMap(lookupAny(item, "home_team", "homeTeam", "localteam")); raw != nil {
			home = normalizeTeam(raw, leagueID)
		} else {
			home = match.Team{
				ID:       getInt64Any(item, "home_team_id", "homeTeamId", "localteam_id"),
				Name:     getStringAny(item, "home_team_name", "homeTeamName"),
				LeagueID: leagueID,
			}
		}
	}
	if away.ID <= 0 {
		if raw := relationDataMap(lookupAny(item, "away_team", "awayTeam", "visitorteam")); raw != nil {
			away = normalizeTeam(raw, leagueID)
		} else {
			away = match.Team{
				ID:       getInt64Any(item, "away_team_id", "awayTeamId", "visitorteam_id"),
				Name:     getStringAny(item, "away_team_name", "awayTeamName"),
				LeagueID: leagueID,
			}
		}
	}
	return home, away
}

func normalizeTeam(raw map[string]any, leagueID int64) match.Team {
	return match.Team{
		ID:        getInt64Any(raw, "id", "team_id", "teamId"),
		Name:      getStringAny(raw, "name", "team_name", "teamName"),
		ShortName: getStringAny(raw, "short_code", "shortCode", "short_name", "shortName"),
		LogoURL:   getStringAny(raw, "image_path", "imagePath", "logo_path", "logo"),
		Country:   firstNonEmpty(getString(relationDataMap(raw["country"]), "name"), getStringAny(raw, "country_name", "countryName")),
		LeagueID:  leagueID,
	}
}

func normalizeDate(item map[string]any) time.Time {
	if parsed, ok := parseProviderDateTime(getStringAny(item, "starting_at", "startingAt", "date", "kickoff_at", "kickoffAt")); ok {
		return parsed
	}
	if ts := getInt64Any(item, "starting_at_timestamp", "startingAtTimestamp", "timestamp"); ts > 0 {
		return time.Unix(ts, 0).UTC()
	}
	return time.Time{}
}

func normalizeStatus(item map[string]any) string {
	state := relationDataMap(lookupAny(item, "state"))
	stateID := getInt64Any(item, "state_id", "stateId")
	if stateID <= 0 {
		stateID = getInt64(state, "id")
	}
	info := firstNonEmpty(
		getStringAny(state, "developer_name", "developerName", "short_name", "state"),
		getStringAny(item, "result_info", "resultInfo", "status"),
	)
	return mapFixtureStatus(stateID, info)
}

func mapFixtureStatus(stateID int64, info string) string {
	switch stateID {
	case 2, 3, 4, 6, 7, 8, 9:
		return match.StatusLive
	case 5, 13, 14:
		return match.StatusFinished
	case 10:
		return match.StatusPostponed
	case 11, 12:
		return match.StatusCancelled
	case 1:
		return match.StatusScheduled
	}

	value := strings.ToLower(strings.TrimSpace(info))
	switch {
	case value == "ft", value == "aet", value == "ft_pen", value == "awarded":
		return match.StatusFinished
	case strings.Contains(value, "postpon"):
		return match.StatusPostponed
	case strings.Contains(value, "cancel"), strings.Contains(value, "abandon"):
		return match.StatusCancelled
	case strings.Contains(value, "live"), strings.Contains(value, "in play"), strings.Contains(value, "half"), strings.Contains(value, "inplay"):
		return match.StatusLive
	case strings.Contains(value, "finish"), strings.Contains(value, "full time"), strings.Contains(value, "won"), strings.Contains(value, "draw"), strings.Contains(value, "pen"):
		return match.StatusFinished
	default:
		return match.StatusScheduled
	}
}

func normalizeVenue(item map[string]any) string {
	if name, ok := lookupAny(item, "venue").(string); ok {
		return strings.TrimSpace(name)
	}
	return firstNonEmpty(
		getString(relationDataMap(lookupAny(item, "venue")), "name"),
		getStringAny(item, "venue_name", "venueName"),
	)
}

func normalizeReferee(item map[string]any) string {
	if name, ok := lookupAny(item, "referee").(string); ok {
		return strings.TrimSpace(name)
	}

	fallback := ""
	for _, row := range relationDataList(lookupAny(item, "referees")) {
		person := relationDataMap(row["referee"])
		name := firstNonEmpty(getStringAny(person, "common_name", "display_name", "name"), getStringAny(row, "name"))
		if name == "" {
			continue
		}
		if getInt64(row, "type_id") == refereeMainTypeID {
			return name
		}
		if fallback == "" {
			fallback = name
		}
	}
	return fallback
}

func normalizeResult(item map[string]any, homeID, awayID int64) match.Result {
	var out match.Result
	scores := relationDataList(lookupAny(item, "scores"))

	if len(scores) > 0 {
		bestWeight := 0
		var halfHome, halfAway int
		halfSeen := false
		for _, score := range scores {
			side := scoreSide(score, homeID, awayID)
			value, ok := scoreValue(score)
			if side == "" || !ok {
				continue
			}

			description := strings.ToLower(getString(score, "description"))
			if description == "1st_half" {
				halfSeen = true
				if side == "home" {
					halfHome = value
				} else {
					halfAway = value
				}
			}

			weight := scoreDescriptionWeight(description)
			if weight > bestWeight {
				bestWeight = weight
				out.HomeScore, out.AwayScore = 0, 0
			}
			if weight < bestWeight {
				continue
			}
			if side == "home" {
				out.HomeScore = value
			} else {
				out.AwayScore = value
			}
		}
		if halfSeen {
			out.HalfTime = &match.Score{Home: halfHome, Away: halfAway}
		}
	} else {
		flat := relationDataMap(lookupAny(item, "result", "scores", "score"))
		if flat == nil {
			flat = item
		}
		out.HomeScore = getIntAny(flat, "home_score", "homeScore", "home", "localteam_score")
		out.AwayScore = getIntAny(flat, "away_score", "awayScore", "away", "visitorteam_score")
		if ht := relationDataMap(lookupAny(flat, "half_time", "halfTime", "ht")); ht != nil {
			out.HalfTime = &match.Score{
				Home: getIntAny(ht, "home", "home_score", "homeScore"),
				Away: getIntAny(ht, "away", "away_score", "awayScore"),
			}
		}
	}

	out.TotalGoals = out.HomeScore + out.AwayScore
	return out
}

func scoreSide(score map[string]any, homeID, awayID int64) string {
	switch getInt64Any(score, "participant_id", "participantId") {
	case homeID:
		return "home"
	case awayID:
		return "away"
	}
	inner := relationDataMap(score["score"])
	switch strings.ToLower(firstNonEmpty(getString(inner, "participant"), getString(score, "participant"), getString(score, "location"))) {
	case "home":
		return "home"
	case "away":
		return "away"
	}
	return ""
}

func scoreValue(score map[string]any) (int, bool) {
	inner := relationDataMap(score["score"])
	for _, candidate := range []any{
		lookupAny(inner, "goals"),
		lookupAny(score, "goals"),
		lookupAny(inner, "value"),
		lookupAny(relationDataMap(score["data"]), "goals"),
		lookupAny(score, "value"),
	} {
		if candidate == nil {
			continue
		}
		if v := int(asFloat64(candidate)); v >= 0 {
			return v, true
		}
	}
	return 0, false
}

func scoreDescriptionWeight(value string) int {
	switch {
	case value == "current":
		return 6
	case strings.Contains(value, "normal_time"), strings.Contains(value, "90"):
		return 5
	case strings.Contains(value, "extra_time"):
		return 4
	case strings.Contains(value, "penalt"):
		return 3
	case value == "1st_half", value == "2nd_half":
		return 2
	default:
		return 1
	}
}

type sideCounter struct {
	home, away       float64
	homeSet, awaySet bool
}

func (s *sideCounter) add(side string, value float64) {
	switch side {
	case "home":
		s.home += value
		s.homeSet = true
	case "away":
		s.away += value
		s.awaySet = true
	}
}

func (s sideCounter) set() bool {
	return s.homeSet || s.awaySet
}

func (s sideCounter) totals() match.SideTotals {
	return match.NewSideTotals(int(s.home), int(s.away))
}

// normalizeStatistics reports false when the provider sent no usable
// statistics; the returned block is then zeroed.
func normalizeStatistics(item map[string]any, homeID, awayID int64) (match.Statistics, bool) {
	counters := map[string]*sideCounter{}
	counter := func(kind string) *sideCounter {
		c, ok := counters[kind]
		if !ok {
			c = &sideCounter{}
			counters[kind] = c
		}
		return c
	}

	raw := lookupAny(item, "statistics", "stats")
	if rows := relationDataList(raw); len(rows) > 0 {
		for _, row := range rows {
			kind := statKind(row)
			side := statSide(row, homeID, awayID)
			if kind == "" || side == "" {
				continue
			}
			counter(kind).add(side, asFloat64(lookupAny(row, "data", "value")))
		}
	} else if flat := relationDataMap(raw); flat != nil {
		for key, value := range flat {
			kind := classifyStatName(key)
			pair, ok := value.(map[string]any)
			if kind == "" || !ok {
				continue
			}
			c := counter(kind)
			c.add("home", asFloat64(lookupAny(pair, "home", "homeTeam", "home_team")))
			c.add("away", asFloat64(lookupAny(pair, "away", "awayTeam", "away_team")))
		}
	}

	var out match.Statistics
	if c, ok := counters[statCorners]; ok {
		t := c.totals()
		out.Corners = match.CornerStats{Home: t.Home, Away: t.Away, Total: t.Total}
	}
	yellow, yellowOK := counters[statYellow]
	red, redOK := counters[statRed]
	if yellowOK {
		out.Cards.Yellow = yellow.totals()
	}
	if redOK {
		out.Cards.Red = red.totals()
	}
	out.Cards.Total = match.NewSideTotals(out.Cards.Yellow.Home+out.Cards.Red.Home, out.Cards.Yellow.Away+out.Cards.Red.Away)

	if c, ok := counters[statFouls]; ok {
		t := c.totals()
		out.Fouls = &t
	}
	if c, ok := counters[statShots]; ok {
		t := c.totals()
		out.Shots = &t
	}
	if c, ok := counters[statPossession]; ok {
		out.Possession = &match.FloatPair{Home: c.home, Away: c.away}
	}
	if c, ok := counters[statXG]; ok {
		out.ExpectedXG = &match.FloatPair{Home: round2(c.home), Away: round2(c.away)}
	}

	first, second := normalizeCornerHalves(item, raw, homeID, awayID)
	out.Corners.FirstHalf, out.Corners.SecondHalf = first, second

	available := false
	for _, kind := range []string{statCorners, statYellow, statRed} {
		if c, ok := counters[kind]; ok && c.set() {
			available = true
		}
	}
	return out, available
}

// normalizeCornerHalves reads the per-period corner split from either the
// periods relation or a flat corners object carrying half keys.
func normalizeCornerHalves(item map[string]any, stats any, homeID, awayID int64) (*match.SideTotals, *match.SideTotals) {
	var first, second *match.SideTotals

	for _, period := range relationDataList(lookupAny(item, "periods")) {
		description := strings.ToLower(firstNonEmpty(getString(period, "description"), getString(period, "name")))
		var c sideCounter
		for _, row := range relationDataList(lookupAny(period, "statistics")) {
			if statKind(row) != statCorners {
				continue
			}
			c.add(statSide(row, homeID, awayID), asFloat64(lookupAny(row, "data", "value")))
		}
		if !c.set() {
			continue
		}
		t := c.totals()
		switch {
		case strings.Contains(description, "1st"), strings.Contains(description, "first"):
			first = &t
		case strings.Contains(description, "2nd"), strings.Contains(description, "second"):
			second = &t
		}
	}
	if first != nil || second != nil {
		return first, second
	}

	flat := relationDataMap(stats)
	if flat == nil {
		return nil, nil
	}
	corners := relationDataMap(lookupAny(flat, "corners", "cornerKicks", "corner_kicks"))
	half := func(keys ...string) *match.SideTotals {
		raw := relationDataMap(lookupAny(corners, keys...))
		if raw == nil {
			return nil
		}
		t := match.NewSideTotals(getInt(raw, "home"), getInt(raw, "away"))
		return &t
	}
	return half("first_half", "firstHalf", "1st_half"), half("second_half", "secondHalf", "2nd_half")
}

func statKind(row map[string]any) string {
	typeInfo := relationDataMap(row["type"])
	if kind := classifyStatName(firstNonEmpty(
		getStringAny(typeInfo, "developer_name", "developerName", "code", "name"),
		getStringAny(row, "type_name", "typeName", "name"),
	)); kind != "" {
		return kind
	}
	typeID := getInt64Any(row, "type_id", "typeId")
	if typeID <= 0 {
		typeID = getInt64(typeInfo, "id")
	}
	return statKindByTypeID[typeID]
}

func statSide(row map[string]any, homeID, awayID int64) string {
	switch strings.ToLower(getStringAny(row, "location", "side")) {
	case "home":
		return "home"
	case "away":
		return "away"
	}
	switch getInt64Any(row, "participant_id", "participantId", "team_id", "teamId") {
	case homeID:
		return "home"
	case awayID:
		return "away"
	}
	return ""
}

func normalizeStatName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	return strings.Join(strings.Fields(raw), " ")
}

func classifyStatName(raw string) string {
	name := normalizeStatName(raw)
	compact := strings.ReplaceAll(name, " ", "")
	switch {
	case name == "":
		return ""
	case strings.Contains(compact, "corner"):
		return statCorners
	case strings.Contains(compact, "yellowred"):
		return statRed
	case strings.Contains(compact, "yellow"):
		return statYellow
	case strings.Contains(compact, "redcard"):
		return statRed
	case strings.Contains(compact, "foul"):
		return statFouls
	case compact == "shots", compact == "shotstotal", compact == "totalshots":
		return statShots
	case strings.Contains(compact, "possession"):
		return statPossession
	case compact == "xg", strings.Contains(compact, "expectedgoals"):
		return statXG
	default:
		return ""
	}
}

var playerDetailKindByTypeID = map[int64]string{
	52:  "goals",
	79:  "assists",
	83:  "redcards",
	84:  "yellowcards",
	119: "minutes",
}

func normalizePlayerStats(item map[string]any) []match.PlayerStat {
	lineups := relationDataList(lookupAny(item, "lineups"))
	if len(lineups) == 0 {
		return nil
	}

	out := make([]match.PlayerStat, 0, len(lineups))
	for _, row := range lineups {
		stat := match.PlayerStat{
			PlayerID: getInt64Any(row, "player_id", "playerId"),
			TeamID:   getInt64Any(row, "team_id", "teamId", "participant_id"),
			Name:     firstNonEmpty(getStringAny(row, "player_name", "playerName"), getString(relationDataMap(row["player"]), "display_name")),
		}
		if stat.PlayerID <= 0 {
			continue
		}

		for _, detail := range relationDataList(lookupAny(row, "details")) {
			typeInfo := relationDataMap(detail["type"])
			kind := strings.ReplaceAll(normalizeStatName(getStringAny(typeInfo, "developer_name", "code", "name")), " ", "")
			if kind == "" {
				kind = playerDetailKindByTypeID[getInt64(detail, "type_id")]
			}
			value := int(asFloat64(lookupAny(detail, "data", "value")))
			switch kind {
			case "goals":
				stat.Goals = value
			case "assists":
				stat.Assists = value
			case "yellowcards":
				stat.Yellow = value
			case "redcards":
				stat.Red = value
			case "minutes", "minutesplayed":
				stat.Minutes = value
			}
		}
		out = append(out, stat)
	}
	return out
}
