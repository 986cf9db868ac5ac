// Package tui renders the live dashboard: tabbed views over the
// domain store with a background reminder tick.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/projectpulse/pulse/internal/cli/formatter"
	"github.com/projectpulse/pulse/internal/derive"
	"github.com/projectpulse/pulse/internal/service"
	"github.com/projectpulse/pulse/internal/store"
)

type tab int

const (
	tabSummary tab = iota
	tabProjects
	tabToDos
	tabNotifications
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabSummary:
		return "Summary"
	case tabProjects:
		return "Projects"
	case tabToDos:
		return "To-dos"
	case tabNotifications:
		return "Notifications"
	default:
		return "?"
	}
}

type tickMsg time.Time

type syncDoneMsg struct{ err error }

// Model is the root bubbletea model for the dashboard.
type Model struct {
	store   *store.Store
	sync    service.SyncService
	scanner *service.ReminderScanner
	clock   func() time.Time

	active  tab
	width   int
	height  int
	spin    spinner.Model
	body    viewport.Model
	loading bool
	syncErr error
	// SaveTab persists the active tab between sessions; optional.
	SaveTab func(string)
}

func New(st *store.Store, sync service.SyncService, scanner *service.ReminderScanner, clock func() time.Time) Model {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)

	return Model{
		store:   st,
		sync:    sync,
		scanner: scanner,
		clock:   clock,
		spin:    sp,
		body:    viewport.New(0, 0),
		loading: true,
	}
}

// RestoreTab selects a previously persisted tab by title.
func (m *Model) RestoreTab(title string) {
	for t := tabSummary; t < tabCount; t++ {
		if t.title() == title {
			m.active = t
			return
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.syncCmd(), m.tickCmd())
}

func (m Model) syncCmd() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{err: m.sync.Hydrate(context.Background())}
	}
}

func (m Model) tickCmd() tea.Cmd {
	interval := 30 * time.Second
	if m.scanner != nil {
		interval = m.scanner.Interval()
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = msg.Height - 4
		m.refreshBody()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % tabCount
			m.persistTab()
			m.refreshBody()
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active + tabCount - 1) % tabCount
			m.persistTab()
			m.refreshBody()
			return m, nil
		case "r":
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.syncCmd())
		}
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd

	case syncDoneMsg:
		m.loading = false
		m.syncErr = msg.err
		m.refreshBody()
		return m, nil

	case tickMsg:
		if m.scanner != nil {
			if fired := m.scanner.Scan(m.clock()); len(fired) > 0 && m.active == tabNotifications {
				m.refreshBody()
			}
		}
		return m, m.tickCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) persistTab() {
	if m.SaveTab != nil {
		m.SaveTab(m.active.title())
	}
}

func (m *Model) refreshBody() {
	m.body.SetContent(m.renderActive())
	m.body.GotoTop()
}

func (m *Model) renderActive() string {
	switch m.active {
	case tabSummary:
		s := derive.BuildSummary(m.store.Projects(), m.store.Tasks(), m.store.Members(), m.clock())
		return formatter.FormatSummary(s)
	case tabProjects:
		projects := m.store.Projects()
		if len(projects) == 0 {
			return formatter.Dim("No projects.")
		}
		return formatter.FormatProjectList(projects)
	case tabToDos:
		todos := m.store.ToDos()
		if len(todos) == 0 {
			return formatter.Dim("Nothing on the list.")
		}
		return formatter.FormatToDoList(todos)
	case tabNotifications:
		notifications := m.store.Notifications()
		if len(notifications) == 0 {
			return formatter.Dim("No notifications this session.")
		}
		var b strings.Builder
		for _, n := range notifications {
			marker := formatter.StyleHeader.Render("●")
			if n.IsRead {
				marker = formatter.Dim("○")
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", marker, n.Message,
				formatter.Dim(n.CreatedAt.Format("15:04"))))
		}
		return b.String()
	}
	return ""
}

func (m Model) View() string {
	var tabs []string
	for t := tabSummary; t < tabCount; t++ {
		title := " " + t.title() + " "
		if t == m.active {
			tabs = append(tabs, formatter.StyleHeader.Render(title))
		} else {
			tabs = append(tabs, formatter.Dim(title))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	status := formatter.Dim("tab: switch · r: resync · q: quit")
	if m.loading {
		status = m.spin.View() + " syncing..."
	} else if m.syncErr != nil {
		status = formatter.StyleRed.Render("sync failed: " + m.syncErr.Error())
	}

	return header + "\n\n" + m.body.View() + "\n" + status
}
