package derive

import "github.com/projectpulse/pulse/internal/domain"

// RollupStatus derives a parent project's status from its full child
// set: Completed when every child has completed, Started when any
// child has left Not Started, otherwise Not Started.
func RollupStatus(children []domain.Project) domain.ProjectStatus {
	if len(children) == 0 {
		return domain.ProjectNotStarted
	}
	allCompleted := true
	anyMoved := false
	for _, c := range children {
		if !c.Status.IsCompleted() {
			allCompleted = false
		}
		if c.Status != domain.ProjectNotStarted {
			anyMoved = true
		}
	}
	switch {
	case allCompleted:
		return domain.ProjectCompleted
	case anyMoved:
		return domain.ProjectStarted
	default:
		return domain.ProjectNotStarted
	}
}
