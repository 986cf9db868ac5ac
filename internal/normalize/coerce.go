package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ID coerces an identifier-like value to its canonical string form.
// The backend may emit ids as JSON numbers or strings; nil becomes "".
func ID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Float coerces a numeric-like value, defaulting to 0 on absence or a
// malformed string.
func Float(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// FloatPtr preserves absence: nil stays nil, anything else is coerced.
func FloatPtr(v any) *float64 {
	if v == nil {
		return nil
	}
	f := Float(v)
	return &f
}

// Int coerces like Float but truncates to an integer.
func Int(v any) int {
	return int(Float(v))
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time parses a timestamp in any of the formats the backend emits.
// Empty or unparseable input yields a nil pointer; absence is never an
// error.
func Time(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

// Day parses a date-bearing string and truncates it to its UTC
// calendar day. Zero time on failure.
func Day(raw string) time.Time {
	t := Time(raw)
	if t == nil {
		return time.Time{}
	}
	return t.Truncate(24 * time.Hour)
}
