// Package derive computes read-only aggregates over the domain store.
// Nothing in this package mutates state.
package derive

import (
	"time"

	"github.com/projectpulse/pulse/internal/domain"
)

// RAG is the red/amber/green health classification.
type RAG string

const (
	RAGRed    RAG = "red"
	RAGYellow RAG = "yellow"
	RAGGreen  RAG = "green"
)

// ProjectHealth pairs a project with its RAG classification.
type ProjectHealth struct {
	ProjectID string
	Name      string
	Status    domain.ProjectStatus
	RAG       RAG
}

// KeyTrends are static placeholder figures shown on the executive
// dashboard. They are not derived from store data.
type KeyTrends struct {
	DeliveryPace     string
	CapacityOutlook  string
	AdoptionMomentum string
}

// Summary is the executive-summary aggregate.
type Summary struct {
	TotalProjects       int
	CompletedProjects   int
	TotalMembers        int
	OpenIssueProjects   map[string]bool
	TotalAllocatedHours float64
	Health              []ProjectHealth
	RAGCounts           map[RAG]int
	KeyTrends           KeyTrends
}

// staticKeyTrends mirrors the dashboard's hardcoded trend figures.
var staticKeyTrends = KeyTrends{
	DeliveryPace:     "+12%",
	CapacityOutlook:  "86%",
	AdoptionMomentum: "+5",
}

// BuildSummary computes the executive summary for the given snapshot.
// Projects with an open issue are excluded from the allocated-hours
// rollup: hours blocked by an issue do not count as committed capacity.
func BuildSummary(projects []domain.Project, tasks []domain.Task, members []domain.Member, now time.Time) Summary {
	s := Summary{
		TotalProjects:     len(projects),
		TotalMembers:      len(members),
		OpenIssueProjects: make(map[string]bool),
		RAGCounts:         make(map[RAG]int),
		KeyTrends:         staticKeyTrends,
	}

	byProject := make(map[string][]domain.Task)
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
		if t.Type == domain.TaskTypeIssue && t.Status != domain.TaskCompleted {
			s.OpenIssueProjects[t.ProjectID] = true
		}
	}

	for _, p := range projects {
		if p.Status.IsCompleted() {
			s.CompletedProjects++
		}
		if !s.OpenIssueProjects[p.ID] {
			s.TotalAllocatedHours += p.AllocatedHours
		}
		rag := Classify(p, byProject[p.ID], now)
		s.Health = append(s.Health, ProjectHealth{
			ProjectID: p.ID,
			Name:      p.Name,
			Status:    p.Status,
			RAG:       rag,
		})
		s.RAGCounts[rag]++
	}
	return s
}

// Classify applies the RAG precedence: an overdue incomplete task wins
// over everything, then the in-flux statuses, then green.
func Classify(p domain.Project, tasks []domain.Task, now time.Time) RAG {
	for _, t := range tasks {
		if t.IsOverdue(now) {
			return RAGRed
		}
	}
	if p.Status == domain.ProjectUserTesting || p.Status == domain.ProjectUpdate {
		return RAGYellow
	}
	return RAGGreen
}
