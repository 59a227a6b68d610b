package sportmonks

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type pagination struct {
	Count       int  `json:"count"`
	PerPage     int  `json:"per_page"`
	CurrentPage int  `json:"current_page"`
	HasMore     bool `json:"has_more"`
}

type listEnvelope struct {
	Data       []map[string]any `json:"data"`
	Pagination pagination       `json:"pagination"`
}

type objectEnvelope struct {
	Data map[string]any `json:"data"`
}

// lookupAny returns the first present value among alternate keys.
func lookupAny(src map[string]any, keys ...string) any {
	if src == nil {
		return nil
	}
	for _, key := range keys {
		if value, ok := src[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func getString(src map[string]any, key string) string {
	return asString(lookupAny(src, key))
}

func getStringAny(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getString(src, key); value != "" {
			return value
		}
	}
	return ""
}

func asString(raw any) string {
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

func getInt(src map[string]any, key string) int {
	return int(getInt64(src, key))
}

func getIntAny(src map[string]any, keys ...string) int {
	for _, key := range keys {
		if value := getInt(src, key); value != 0 {
			return value
		}
	}
	return 0
}

func getInt64Any(src map[string]any, keys ...string) int64 {
	for _, key := range keys {
		if value := getInt64(src, key); value != 0 {
			return value
		}
	}
	return 0
}

// getInt64 reads an integer that may arrive as a number, a numeric string or
// a nested object carrying a total or home/away pair.
func getInt64(src map[string]any, key string) int64 {
	return asInt64(lookupAny(src, key))
}

func asInt64(raw any) int64 {
	switch typed := raw.(type) {
	case nil:
		return 0
	case float64:
		return int64(typed)
	case float32:
		return int64(typed)
	case int:
		return int64(typed)
	case int64:
		return typed
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return int64(asFloat64(typed))
		}
		return v
	case map[string]any:
		for _, nestedKey := range []string{"total", "all", "overall", "value"} {
			if v := asInt64(typed[nestedKey]); v != 0 {
				return v
			}
		}
		return asInt64(typed["home"]) + asInt64(typed["away"])
	default:
		return 0
	}
}

func asFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(typed), "%"), 64)
		if err != nil {
			return 0
		}
		return parsed
	case map[string]any:
		for _, key := range []string{"value", "total"} {
			if v, ok := typed[key]; ok {
				return asFloat64(v)
			}
		}
		return 0
	default:
		return 0
	}
}

// relationDataMap unwraps {"data": {...}} relations and passes plain objects through.
func relationDataMap(raw any) map[string]any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

// relationDataList unwraps {"data": [...]} relations and plain arrays.
func relationDataList(raw any) []map[string]any {
	switch typed := raw.(type) {
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if row, ok := item.(map[string]any); ok {
				out = append(out, row)
			}
		}
		return out
	case []map[string]any:
		return typed
	case map[string]any:
		if nested, ok := typed["data"]; ok {
			return relationDataList(nested)
		}
		return nil
	default:
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func parseProviderDateTime(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05",
		providerDateLayout,
	} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
