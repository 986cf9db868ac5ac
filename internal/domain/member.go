package domain

import "time"

type Member struct {
	ID              string
	Name            string
	Role            Role
	TeamID          string
	SubTeamLeaderID string // set only for Staff
	OfficeLocation  string
	AvatarURL       string
}

type Team struct {
	ID          string
	Name        string
	Description string
}

type Tool struct {
	ID     string
	Name   string
	Status string
}

// Leave is an absence range. Start and end are normalized to UTC
// calendar days on the way in.
type Leave struct {
	ID        string
	MemberID  string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// Covers reports whether the leave range includes the given UTC day.
func (l Leave) Covers(day time.Time) bool {
	d := day.UTC().Truncate(24 * time.Hour)
	return !d.Before(l.StartDate) && !d.After(l.EndDate)
}
