package derive

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/projectpulse/pulse/internal/domain"
)

// WeekStartFunc maps an instant to the start of its week. The boundary
// is policy supplied by the caller; SundayWeekStart is the default.
type WeekStartFunc func(time.Time) time.Time

// SundayWeekStart returns the preceding (or same) Sunday at 00:00 UTC.
func SundayWeekStart(t time.Time) time.Time {
	day := t.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

const twiceAMonthDefault = "1,15"

// RecurrenceDue reports whether a completed periodic project is due
// for a new saved-hours log entry. A project with no prior log is
// immediately due; an unknown or absent frequency is never due.
func RecurrenceDue(p domain.Project, now time.Time, weekStart WeekStartFunc) bool {
	if weekStart == nil {
		weekStart = SundayWeekStart
	}
	switch p.Frequency {
	case domain.FreqDaily, domain.FreqWeekly, domain.FreqMonthly,
		domain.FreqTwiceAMonth, domain.FreqThreeWeeksOnce, domain.FreqSpecificDates:
	default:
		return false
	}

	last := p.LatestUsage()
	if last == nil {
		return true
	}

	today := now.UTC().Truncate(24 * time.Hour)
	lastDay := last.Date.UTC().Truncate(24 * time.Hour)

	switch p.Frequency {
	case domain.FreqDaily:
		return lastDay.Before(today)
	case domain.FreqWeekly:
		return lastDay.Before(weekStart(now))
	case domain.FreqMonthly:
		monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return lastDay.Before(monthStart)
	case domain.FreqTwiceAMonth:
		return twiceAMonthDue(p.FrequencyDetail, today, lastDay)
	case domain.FreqThreeWeeksOnce:
		return now.UTC().Sub(last.Date.UTC()) >= 21*24*time.Hour
	case domain.FreqSpecificDates:
		return specificDatesDue(p.FrequencyDetail, today, lastDay)
	}
	return false
}

// twiceAMonthDue evaluates the two day-of-month checkpoints
// independently: due once today has reached either checkpoint and the
// last log predates that occurrence.
func twiceAMonthDue(detail string, today, lastDay time.Time) bool {
	d1, d2 := parseTwiceAMonth(detail)
	for _, day := range []int{d1, d2} {
		occurrence := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, time.UTC)
		if !today.Before(occurrence) && lastDay.Before(occurrence) {
			return true
		}
	}
	return false
}

func parseTwiceAMonth(detail string) (int, int) {
	parse := func(s string) (int, int, bool) {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return 0, 0, false
		}
		a, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil || a < 1 || a > 31 || b < 1 || b > 31 {
			return 0, 0, false
		}
		return a, b, true
	}
	if a, b, ok := parse(detail); ok {
		return a, b
	}
	a, b, _ := parse(twiceAMonthDefault)
	return a, b
}

// specificDatesDue reports whether any scheduled date falls after the
// last log and on or before today. The detail is a JSON array of ISO
// date strings; malformed detail is never due.
func specificDatesDue(detail string, today, lastDay time.Time) bool {
	var raw []string
	if err := json.Unmarshal([]byte(detail), &raw); err != nil {
		return false
	}
	for _, s := range raw {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
		if err != nil {
			continue
		}
		if d.After(lastDay) && !d.After(today) {
			return true
		}
	}
	return false
}
