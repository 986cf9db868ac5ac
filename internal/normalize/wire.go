package normalize

import (
	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
)

// Converters back into wire shape. Used when composing create bodies
// and by test doubles that play the backend.

func ProjectRecord(p domain.Project) api.ProjectRecord {
	rec := api.ProjectRecord{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Status:          string(p.Status),
		OwnerID:         p.LeadID,
		TeamID:          p.TeamID,
		AllocatedHours:  p.AllocatedHours,
		UsedHours:       p.UsedHours,
		AdditionalHours: p.AdditionalHours,
		Frequency:       string(p.Frequency),
		FrequencyDetail: p.FrequencyDetail,
		TimerStartTime:  formatTime(p.TimerStartTime),
		CompletedAt:     formatTime(p.CompletedAt),
		EndUserFeedback: p.EndUserFeedback,
		LatestComments:  p.LatestComments,
	}
	if p.ParentID != "" {
		rec.ParentID = p.ParentID
		rec.Weight = p.Weight
	}
	if p.SavedHours != nil {
		rec.SavedHours = *p.SavedHours
	}
	if p.ExpectedSavedHours != nil {
		rec.ExpectedSavedHours = *p.ExpectedSavedHours
	}
	for _, b := range p.Users {
		rec.Users = append(rec.Users, api.BeneficiaryRecord{Kind: string(b.Kind), ID: b.ID})
	}
	for _, tool := range p.ToolsUsed {
		rec.ToolsUsed = append(rec.ToolsUsed, tool)
	}
	for _, u := range p.LastUsedBy {
		rec.LastUsedBy = append(rec.LastUsedBy, api.UsageRecord{
			UserID:     u.UserID,
			Date:       u.Date.UTC().Format(dayLayout),
			SavedHours: u.SavedHours,
		})
	}
	return rec
}

func TaskRecord(t domain.Task) api.TaskRecord {
	return api.TaskRecord{
		ID:                  t.ID,
		Title:               t.Title,
		Description:         t.Description,
		Type:                string(t.Type),
		ProjectID:           t.ProjectID,
		Status:              string(t.Status),
		Priority:            t.Priority,
		Severity:            t.Severity,
		Deadline:            formatTime(t.Deadline),
		AssigneeID:          t.AssigneeID,
		StatusReason:        t.StatusReason,
		Difficulty:          t.Difficulty,
		TimeSpent:           t.TimeSpent,
		TimeSaved:           t.TimeSaved,
		CompletionReference: t.CompletionReference,
		CompletedAt:         formatTime(t.CompletedAt),
		LastUpdated:         formatTime(t.LastUpdated),
	}
}

func ToDoRecord(td domain.ToDo) api.ToDoRecord {
	rec := api.ToDoRecord{
		ID:              td.ID,
		Title:           td.Title,
		DueDate:         td.DueDate.UTC().Format(dayLayout),
		DueTime:         td.DueTime,
		Frequency:       string(td.Frequency),
		IsComplete:      td.IsComplete,
		LastCompletedAt: formatTime(td.LastCompletedAt),
		OwnerID:         td.OwnerID,
	}
	if !td.CreatedAt.IsZero() {
		created := td.CreatedAt
		rec.CreatedAt = formatTime(&created)
	}
	return rec
}

func MemberRecord(m domain.Member) api.MemberRecord {
	return api.MemberRecord{
		ID:              m.ID,
		Name:            m.Name,
		Role:            string(m.Role),
		TeamID:          m.TeamID,
		SubTeamLeaderID: m.SubTeamLeaderID,
		OfficeLocation:  m.OfficeLocation,
		AvatarURL:       m.AvatarURL,
	}
}

func LeaveRecord(l domain.Leave) api.LeaveRecord {
	return api.LeaveRecord{
		ID:        l.ID,
		MemberID:  l.MemberID,
		StartDate: l.StartDate.UTC().Format(dayLayout),
		EndDate:   l.EndDate.UTC().Format(dayLayout),
		Reason:    l.Reason,
	}
}

func AuditRecord(a domain.AuditEntry) api.AuditRecord {
	ts := a.Timestamp
	return api.AuditRecord{
		ID:         a.ID,
		UserID:     a.UserID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Timestamp:  formatTime(&ts),
		Details:    a.Details,
	}
}
