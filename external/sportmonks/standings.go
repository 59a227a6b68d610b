package sportmonks

import (
	"sort"
	"strings"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
)

// Standing detail type ids. Overall aggregates outrank the home/away splits
// that share a metric.
var standingMetricByTypeID = map[int64]string{
	117: "goals_for", 118: "goals_against",
	119: "played", 120: "played",
	121: "won", 122: "won",
	123: "draw", 124: "draw",
	125: "lost", 126: "lost",
	127: "points", 128: "points",
	129: "played", 130: "won", 131: "draw", 132: "lost",
	133: "goals_for", 134: "goals_against",
	179: "goal_difference", 187: "points",
}

const (
	priorityVenueSplit = 1
	priorityUnknown    = 2
	priorityOverall    = 3
)

func parseStandings(items []map[string]any) []leaguestanding.Standing {
	out := make([]leaguestanding.Standing, 0, len(items))
	for _, item := range items {
		participant := relationDataMap(item["participant"])
		teamID := getInt64Any(item, "participant_id", "participantId", "team_id", "teamId")
		if teamID <= 0 {
			teamID = getInt64(participant, "id")
		}

		row := leaguestanding.Standing{
			TeamID:         teamID,
			TeamName:       firstNonEmpty(getString(participant, "name"), getStringAny(item, "team_name", "teamName")),
			Position:       getIntAny(item, "position", "rank"),
			Played:         getIntAny(item, "played", "matches_played", "games_played"),
			Won:            getIntAny(item, "won", "wins"),
			Draw:           getIntAny(item, "draw", "draws", "drawn"),
			Lost:           getIntAny(item, "lost", "losses"),
			GoalsFor:       getIntAny(item, "goals_for", "goalsFor", "goals_scored"),
			GoalsAgainst:   getIntAny(item, "goals_against", "goalsAgainst", "goals_conceded"),
			GoalDifference: getIntAny(item, "goal_difference", "goalDifference"),
			Points:         getInt(item, "points"),
			Form:           parseStandingForm(item["form"]),
		}
		if updated, ok := parseProviderDateTime(getStringAny(item, "updated_at", "updatedAt")); ok {
			row.UpdatedAt = &updated
		}

		priorities := make(map[string]int, 8)
		for _, detail := range relationDataList(item["details"]) {
			applyStandingDetail(&row, priorities, detail)
		}

		if played := row.Won + row.Draw + row.Lost; played > 0 {
			row.Played = played
		}
		if row.GoalDifference == 0 && (row.GoalsFor != 0 || row.GoalsAgainst != 0) {
			row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		}
		if row.Position <= 0 || row.TeamID <= 0 {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

func applyStandingDetail(row *leaguestanding.Standing, priorities map[string]int, detail map[string]any) {
	typeInfo := relationDataMap(detail["type"])
	name := normalizeStatName(firstNonEmpty(
		getStringAny(typeInfo, "developer_name", "code", "name"),
		getString(detail, "type"),
	))
	if strings.Contains(name, "percent") || strings.Contains(name, "rate") {
		return
	}

	typeID := getInt64(detail, "type_id")
	if typeID <= 0 {
		typeID = getInt64(typeInfo, "id")
	}
	value := int(asInt64(lookupAny(detail, "value", "total")))
	if value == 0 {
		return
	}

	metric, priority := standingMetric(typeID, name)
	if metric == "" {
		return
	}
	if current, seen := priorities[metric]; seen && current > priority {
		return
	}
	priorities[metric] = priority

	switch metric {
	case "played":
		row.Played = value
	case "won":
		row.Won = value
	case "draw":
		row.Draw = value
	case "lost":
		row.Lost = value
	case "goals_for":
		row.GoalsFor = value
	case "goals_against":
		row.GoalsAgainst = value
	case "goal_difference":
		row.GoalDifference = value
	case "points":
		row.Points = value
	}
}

func standingMetric(typeID int64, name string) (string, int) {
	if metric, ok := standingMetricByTypeID[typeID]; ok {
		if typeID >= 129 {
			return metric, priorityOverall
		}
		return metric, priorityVenueSplit
	}

	priority := priorityUnknown
	switch {
	case strings.Contains(name, "overall"), strings.Contains(name, "total"):
		priority = priorityOverall
	case strings.Contains(name, "home"), strings.Contains(name, "away"):
		priority = priorityVenueSplit
	}

	switch {
	case strings.Contains(name, "goal difference"):
		return "goal_difference", priority
	case strings.Contains(name, "conceded"), strings.Contains(name, "goals against"):
		return "goals_against", priority
	case strings.Contains(name, "goals for"), strings.Contains(name, "goals scored"):
		return "goals_for", priority
	case strings.Contains(name, "matches played"), strings.Contains(name, "games played"), name == "played":
		return "played", priority
	case strings.HasSuffix(name, "won"), name == "wins":
		return "won", priority
	case strings.HasSuffix(name, "draw"), strings.HasSuffix(name, "drawn"):
		return "draw", priority
	case strings.HasSuffix(name, "lost"), name == "losses":
		return "lost", priority
	case strings.HasSuffix(name, "points"):
		return "points", priority
	default:
		return "", 0
	}
}

func parseStandingForm(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		if nested, ok := typed["data"]; ok {
			return parseStandingForm(nested)
		}
		return firstNonEmpty(getString(typed, "form"), getString(typed, "result"))
	case []any:
		var b strings.Builder
		for _, row := range relationDataList(typed) {
			b.WriteString(strings.ToUpper(firstNonEmpty(getString(row, "form"), getString(row, "result"))))
		}
		return b.String()
	default:
		return ""
	}
}
