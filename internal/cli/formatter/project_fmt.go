package formatter

import (
	"fmt"
	"strings"

	"github.com/projectpulse/pulse/internal/domain"
)

// FormatProjectList renders the project table. Child projects are
// indented under their parent.
func FormatProjectList(projects []domain.Project) string {
	headers := []string{"ID", "NAME", "STATUS", "TIMER", "USED", "ALLOC"}
	byParent := make(map[string][]domain.Project)
	var roots []domain.Project
	for _, p := range projects {
		if p.ParentID == "" {
			roots = append(roots, p)
			continue
		}
		byParent[p.ParentID] = append(byParent[p.ParentID], p)
	}

	var rows [][]string
	var walk func(p domain.Project, depth int)
	walk = func(p domain.Project, depth int) {
		name := p.Name
		if depth > 0 {
			name = strings.Repeat("  ", depth) + "└ " + name
		}
		rows = append(rows, []string{
			p.ID,
			Bold(name),
			StatusPill(p.Status),
			TimerBadge(p.Timer().Phase),
			fmt.Sprintf("%.1fh", p.UsedHours),
			fmt.Sprintf("%.1fh", p.AllocatedHours),
		})
		for _, c := range byParent[p.ID] {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	// Orphans whose parent is not in the snapshot still render.
	seen := make(map[string]bool)
	for _, row := range rows {
		seen[row[0]] = true
	}
	for _, p := range projects {
		if !seen[p.ID] {
			walk(p, 0)
		}
	}
	return RenderTable(headers, rows)
}

// FormatProject renders a single project card.
func FormatProject(p domain.Project) string {
	var b strings.Builder
	b.WriteString(Header(p.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Status:"), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold("Timer:"), TimerBadge(p.Timer().Phase)))
	b.WriteString(fmt.Sprintf("%s  %.1fh used / %.1fh allocated\n", Bold("Hours:"), p.UsedHours, p.AllocatedHours))
	if p.SavedHours != nil {
		b.WriteString(fmt.Sprintf("%s  %.1fh\n", Bold("Saved:"), *p.SavedHours))
	}
	if p.Frequency != "" {
		detail := ""
		if p.FrequencyDetail != "" {
			detail = " (" + p.FrequencyDetail + ")"
		}
		b.WriteString(fmt.Sprintf("%s %s%s\n", Bold("Cadence:"), string(p.Frequency), Dim(detail)))
	}
	if u := p.LatestUsage(); u != nil {
		b.WriteString(fmt.Sprintf("%s %s on %s\n", Bold("Last used:"), u.UserID, u.Date.Format("2006-01-02")))
	}
	if p.LatestComments != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Bold("Comment:"), p.LatestComments))
	}
	return b.String()
}

// FormatTaskList renders tasks grouped with their type badges.
func FormatTaskList(tasks []domain.Task) string {
	headers := []string{"ID", "TITLE", "TYPE", "STATUS", "ASSIGNEE", "DEADLINE"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		deadline := Dim("--")
		if t.Deadline != nil {
			deadline = t.Deadline.Format("2006-01-02")
		}
		assignee := t.AssigneeID
		if assignee == "" {
			assignee = Dim("--")
		}
		rows = append(rows, []string{
			t.ID,
			Bold(t.Title),
			taskTypeBadge(t.Type),
			taskStatusPill(t.Status),
			assignee,
			deadline,
		})
	}
	return RenderTable(headers, rows)
}

func taskTypeBadge(tt domain.TaskType) string {
	switch tt {
	case domain.TaskTypeIssue:
		return StyleRed.Render("issue")
	case domain.TaskTypeRisk:
		return StyleYellow.Render("blocked")
	default:
		return StyleBlue.Render("task")
	}
}

func taskStatusPill(s domain.TaskStatus) string {
	switch s {
	case domain.TaskCompleted:
		return StyleGreen.Render(string(s))
	case domain.TaskBlocked:
		return StyleRed.Render(string(s))
	case domain.TaskNotStarted:
		return StyleDim.Render(string(s))
	default:
		return StyleBlue.Render(string(s))
	}
}

// FormatToDoList renders the personal to-do table.
func FormatToDoList(todos []domain.ToDo) string {
	headers := []string{"ID", "TITLE", "DUE", "FREQUENCY", "DONE"}
	rows := make([][]string, 0, len(todos))
	for _, td := range todos {
		due := td.DueDate.Format("2006-01-02")
		if td.DueTime != "" {
			due += " " + td.DueTime
		}
		done := Dim("no")
		if td.IsComplete {
			done = StyleGreen.Render("yes")
		}
		rows = append(rows, []string{td.ID, Bold(td.Title), due, string(td.Frequency), done})
	}
	return RenderTable(headers, rows)
}
