package domain

import (
	"fmt"
	"strings"
	"time"
)

// Beneficiary is a user or team designated as the consumer of a
// project's time savings.
type Beneficiary struct {
	Kind BeneficiaryKind
	ID   string
}

// UsageLog is one append-only entry in a project's saved-hours log.
type UsageLog struct {
	UserID     string
	Date       time.Time
	SavedHours float64
}

type Project struct {
	ID              string
	Name            string
	Description     string
	Status          ProjectStatus
	LeadID          string
	TeamID          string
	ParentID        string
	Weight          int // percentage contribution to parent, 1-100
	AllocatedHours  float64
	UsedHours       float64
	AdditionalHours float64

	// Saved-hours fields distinguish "never set" from zero.
	SavedHours         *float64
	ExpectedSavedHours *float64

	Frequency       Frequency
	FrequencyDetail string
	TimerStartTime  *time.Time
	CompletedAt     *time.Time

	Users           []Beneficiary
	ToolsUsed       []string
	LastUsedBy      []UsageLog
	EndUserFeedback string
	LatestComments  string
}

// TimerPhase is the reified work-timer state. The persisted encoding is
// the (Status, TimerStartTime) pair; Timer() translates to the variant.
type TimerPhase int

const (
	TimerIdle TimerPhase = iota
	TimerRunning
	TimerHeld
	TimerCompleted
)

// TimerState is the tagged-variant view of a project's work timer.
// Since is meaningful only when Phase is TimerRunning.
type TimerState struct {
	Phase TimerPhase
	Since time.Time
}

// Timer derives the timer state from the flat persisted representation.
func (p *Project) Timer() TimerState {
	if p.TimerStartTime != nil {
		return TimerState{Phase: TimerRunning, Since: *p.TimerStartTime}
	}
	if p.Status.IsCompleted() {
		return TimerState{Phase: TimerCompleted}
	}
	if p.Status == ProjectStarted && p.UsedHours > 0 {
		return TimerState{Phase: TimerHeld}
	}
	return TimerState{Phase: TimerIdle}
}

// StartTimer begins (or resumes) a work session.
func (p *Project) StartTimer(now time.Time) {
	t := now
	p.Status = ProjectStarted
	p.TimerStartTime = &t
}

// HoldTimer pauses the active session, folding elapsed time into
// UsedHours. Returns the hours accumulated by this call.
func (p *Project) HoldTimer(now time.Time) (float64, error) {
	elapsed, err := p.elapsedHours(now)
	if err != nil {
		return 0, err
	}
	p.UsedHours += elapsed
	p.TimerStartTime = nil
	return elapsed, nil
}

// EndTimer stops the session and marks the project completed.
func (p *Project) EndTimer(now time.Time) (float64, error) {
	elapsed, err := p.elapsedHours(now)
	if err != nil {
		return 0, err
	}
	t := now
	p.UsedHours += elapsed
	p.TimerStartTime = nil
	p.Status = ProjectCompleted
	p.CompletedAt = &t
	return elapsed, nil
}

func (p *Project) elapsedHours(now time.Time) (float64, error) {
	if p.TimerStartTime == nil {
		return 0, fmt.Errorf("project %s has no running timer", p.ID)
	}
	elapsed := now.Sub(*p.TimerStartTime).Hours()
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, nil
}

// ParseTimerTimestamp accepts both "2006-01-02T15:04:05Z07:00" and the
// space-separated form some backends emit for timer start times.
func ParseTimerTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timer timestamp %q", raw)
}

// LatestUsage returns the most recent saved-hours log entry by date,
// or nil when the log is empty.
func (p *Project) LatestUsage() *UsageLog {
	var latest *UsageLog
	for i := range p.LastUsedBy {
		entry := &p.LastUsedBy[i]
		if latest == nil || entry.Date.After(latest.Date) {
			latest = entry
		}
	}
	return latest
}
