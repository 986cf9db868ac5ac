// Package normalize converts raw wire records into canonical domain
// entities. Every function is total: malformed numerics default to
// zero, absent identifiers become empty strings, and nothing here ever
// returns an error. Favoring availability over strict validation is
// deliberate.
package normalize

import (
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
)

func Project(rec api.ProjectRecord) domain.Project {
	p := domain.Project{
		ID:                 ID(rec.ID),
		Name:               rec.Name,
		Description:        rec.Description,
		Status:             domain.ProjectStatus(rec.Status),
		LeadID:             ID(rec.OwnerID),
		TeamID:             ID(rec.TeamID),
		ParentID:           ID(rec.ParentID),
		Weight:             Int(rec.Weight),
		AllocatedHours:     Float(rec.AllocatedHours),
		UsedHours:          Float(rec.UsedHours),
		AdditionalHours:    Float(rec.AdditionalHours),
		SavedHours:         FloatPtr(rec.SavedHours),
		ExpectedSavedHours: FloatPtr(rec.ExpectedSavedHours),
		Frequency:          domain.Frequency(rec.Frequency),
		FrequencyDetail:    rec.FrequencyDetail,
		CompletedAt:        Time(rec.CompletedAt),
		EndUserFeedback:    rec.EndUserFeedback,
		LatestComments:     rec.LatestComments,
	}
	if p.UsedHours < 0 {
		p.UsedHours = 0
	}
	if rec.TimerStartTime != "" {
		if t, err := domain.ParseTimerTimestamp(rec.TimerStartTime); err == nil {
			p.TimerStartTime = &t
		}
	}
	for _, b := range rec.Users {
		p.Users = append(p.Users, domain.Beneficiary{
			Kind: domain.BeneficiaryKind(b.Kind),
			ID:   ID(b.ID),
		})
	}
	for _, tool := range rec.ToolsUsed {
		p.ToolsUsed = append(p.ToolsUsed, ID(tool))
	}
	for _, u := range rec.LastUsedBy {
		p.LastUsedBy = append(p.LastUsedBy, domain.UsageLog{
			UserID:     ID(u.UserID),
			Date:       Day(u.Date),
			SavedHours: Float(u.SavedHours),
		})
	}
	return p
}

func Task(rec api.TaskRecord) domain.Task {
	return domain.Task{
		ID:                  ID(rec.ID),
		Title:               rec.Title,
		Description:         rec.Description,
		Type:                domain.TaskType(rec.Type),
		ProjectID:           ID(rec.ProjectID),
		Status:              domain.TaskStatus(rec.Status),
		Priority:            rec.Priority,
		Severity:            rec.Severity,
		Deadline:            Time(rec.Deadline),
		AssigneeID:          ID(rec.AssigneeID),
		StatusReason:        rec.StatusReason,
		Difficulty:          rec.Difficulty,
		TimeSpent:           Float(rec.TimeSpent),
		TimeSaved:           Float(rec.TimeSaved),
		CompletionReference: rec.CompletionReference,
		CompletedAt:         Time(rec.CompletedAt),
		LastUpdated:         Time(rec.LastUpdated),
	}
}

func ToDo(rec api.ToDoRecord) domain.ToDo {
	td := domain.ToDo{
		ID:              ID(rec.ID),
		Title:           rec.Title,
		DueDate:         Day(rec.DueDate),
		DueTime:         rec.DueTime,
		Frequency:       domain.ToDoFrequency(rec.Frequency),
		IsComplete:      rec.IsComplete,
		LastCompletedAt: Time(rec.LastCompletedAt),
		OwnerID:         ID(rec.OwnerID),
	}
	if t := Time(rec.CreatedAt); t != nil {
		td.CreatedAt = *t
	}
	return td
}

func Member(rec api.MemberRecord) domain.Member {
	return domain.Member{
		ID:              ID(rec.ID),
		Name:            rec.Name,
		Role:            domain.Role(rec.Role),
		TeamID:          ID(rec.TeamID),
		SubTeamLeaderID: ID(rec.SubTeamLeaderID),
		OfficeLocation:  rec.OfficeLocation,
		AvatarURL:       rec.AvatarURL,
	}
}

func Team(rec api.TeamRecord) domain.Team {
	return domain.Team{
		ID:          ID(rec.ID),
		Name:        rec.Name,
		Description: rec.Description,
	}
}

func Tool(rec api.ToolRecord) domain.Tool {
	return domain.Tool{
		ID:     ID(rec.ID),
		Name:   rec.Name,
		Status: rec.Status,
	}
}

func Leave(rec api.LeaveRecord) domain.Leave {
	return domain.Leave{
		ID:        ID(rec.ID),
		MemberID:  ID(rec.MemberID),
		StartDate: Day(rec.StartDate),
		EndDate:   Day(rec.EndDate),
		Reason:    rec.Reason,
	}
}

func Audit(rec api.AuditRecord) domain.AuditEntry {
	entry := domain.AuditEntry{
		ID:         ID(rec.ID),
		UserID:     ID(rec.UserID),
		Action:     rec.Action,
		EntityType: rec.EntityType,
		EntityID:   ID(rec.EntityID),
		Details:    rec.Details,
	}
	if t := Time(rec.Timestamp); t != nil {
		entry.Timestamp = *t
	}
	return entry
}

func SystemConfig(rec api.SettingRecord) domain.SystemConfig {
	return domain.SystemConfig{ID: ID(rec.ID), Key: rec.Key, Value: rec.Value}
}

func ProjectPhase(rec api.SettingRecord) domain.ProjectPhase {
	return domain.ProjectPhase{ID: ID(rec.ID), Name: rec.Name}
}

func Department(rec api.SettingRecord) domain.Department {
	return domain.Department{ID: ID(rec.ID), Name: rec.Name}
}

func RiskLevelSetting(rec api.SettingRecord) domain.RiskLevelSetting {
	return domain.RiskLevelSetting{ID: ID(rec.ID), Name: rec.Name, Level: Int(rec.Level)}
}

const dayLayout = "2006-01-02"

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
