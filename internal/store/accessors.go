package store

import "github.com/projectpulse/pulse/internal/domain"

// Projects

func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.all()
}

func (s *Store) Project(id string) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects.get(id)
}

func (s *Store) PutProject(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects.put(p.ID, p)
}

func (s *Store) RemoveProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects.remove(id)
}

func (s *Store) ReplaceProjects(projects []domain.Project) {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects.replace(ids, projects)
}

// ChildProjects returns the direct children of the given project, in
// insertion order.
func (s *Store) ChildProjects(parentID string) []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Project
	for _, e := range s.projects.order {
		if e.item.ParentID == parentID {
			out = append(out, e.item)
		}
	}
	return out
}

// DescendantProjects returns every project below the given root in the
// parent tree, depth-first.
func (s *Store) DescendantProjects(rootID string) []domain.Project {
	children := s.ChildProjects(rootID)
	var out []domain.Project
	for _, c := range children {
		out = append(out, c)
		out = append(out, s.DescendantProjects(c.ID)...)
	}
	return out
}

// Tasks

func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.all()
}

func (s *Store) Task(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.get(id)
}

func (s *Store) PutTask(t domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.put(t.ID, t)
}

func (s *Store) RemoveTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.remove(id)
}

func (s *Store) ReplaceTasks(tasks []domain.Task) {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.replace(ids, tasks)
}

// TasksForProject returns the tasks owned by the given project.
func (s *Store) TasksForProject(projectID string) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Task
	for _, e := range s.tasks.order {
		if e.item.ProjectID == projectID {
			out = append(out, e.item)
		}
	}
	return out
}

// ToDos

func (s *Store) ToDos() []domain.ToDo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.todos.all()
}

func (s *Store) ToDo(id string) (domain.ToDo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todos.get(id)
}

func (s *Store) PutToDo(td domain.ToDo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos.put(td.ID, td)
}

func (s *Store) RemoveToDo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todos.remove(id)
}

func (s *Store) ReplaceToDos(todos []domain.ToDo) {
	ids := make([]string, len(todos))
	for i, td := range todos {
		ids[i] = td.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos.replace(ids, todos)
}

// Members

func (s *Store) Members() []domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.all()
}

func (s *Store) Member(id string) (domain.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.get(id)
}

func (s *Store) PutMember(m domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members.put(m.ID, m)
}

func (s *Store) ReplaceMembers(members []domain.Member) {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members.replace(ids, members)
}

// Teams, tools, leave

func (s *Store) Teams() []domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams.all()
}

func (s *Store) Team(id string) (domain.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teams.get(id)
}

func (s *Store) ReplaceTeams(teams []domain.Team) {
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams.replace(ids, teams)
}

func (s *Store) Tools() []domain.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tools.all()
}

func (s *Store) ReplaceTools(tools []domain.Tool) {
	ids := make([]string, len(tools))
	for i, t := range tools {
		ids[i] = t.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools.replace(ids, tools)
}

func (s *Store) Leaves() []domain.Leave {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaves.all()
}

func (s *Store) Leave(id string) (domain.Leave, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaves.get(id)
}

func (s *Store) PutLeave(l domain.Leave) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves.put(l.ID, l)
}

func (s *Store) RemoveLeave(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaves.remove(id)
}

func (s *Store) ReplaceLeaves(leaves []domain.Leave) {
	ids := make([]string, len(leaves))
	for i, l := range leaves {
		ids[i] = l.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves.replace(ids, leaves)
}

// Notifications, newest first.

func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifications.all()
}

func (s *Store) AddNotification(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications.prepend(n.ID, n)
}

func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.notifications.get(id); ok {
		n.IsRead = true
		s.notifications.put(id, n)
	}
}

// Audit log, newest first.

func (s *Store) AuditLog() []domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audit.all()
}

func (s *Store) AddAuditEntry(a domain.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit.prepend(a.ID, a)
}

func (s *Store) ReplaceAuditLog(entries []domain.AuditEntry) {
	ids := make([]string, len(entries))
	for i, a := range entries {
		ids[i] = a.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit.replace(ids, entries)
}

// Settings aggregates.

func (s *Store) SetSettings(cfg []domain.SystemConfig, phases []domain.ProjectPhase, depts []domain.Department, risks []domain.RiskLevelSetting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemConfig = cfg
	s.projectPhases = phases
	s.departments = depts
	s.riskLevels = risks
}

func (s *Store) SystemConfig() []domain.SystemConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.systemConfig
}

func (s *Store) ProjectPhases() []domain.ProjectPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectPhases
}

func (s *Store) Departments() []domain.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.departments
}

func (s *Store) RiskLevels() []domain.RiskLevelSetting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.riskLevels
}
