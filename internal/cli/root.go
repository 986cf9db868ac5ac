package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/projectpulse/pulse/internal/localstate"
	"github.com/projectpulse/pulse/internal/service"
	"github.com/projectpulse/pulse/internal/store"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth     service.AuthService
	Sync     service.SyncService
	Projects service.ProjectService
	Tasks    service.TaskService
	ToDos    service.ToDoService
	Leaves   service.LeaveService

	Store   *store.Store
	State   *localstate.DB
	Scanner *service.ReminderScanner
	Clock   func() time.Time

	// IsInteractive reports whether stdin is a terminal; prompts and
	// the dashboard are only offered when it returns true.
	IsInteractive func() bool
}

func (app *App) now() time.Time {
	if app.Clock != nil {
		return app.Clock()
	}
	return time.Now().UTC()
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// actorID returns the id of the signed-in member, restoring a
// persisted session if needed.
func (app *App) actorID() (string, error) {
	if m, ok := app.Auth.CurrentUser(); ok {
		return m.ID, nil
	}
	if m, ok := app.Auth.RestoreSession(); ok {
		return m.ID, nil
	}
	return "", fmt.Errorf("not signed in; run `pulse login` first")
}

// hydrate pulls the full remote snapshot into the store. Commands that
// read or mutate domain state call it first so they operate on fresh
// data.
func (app *App) hydrate(ctx context.Context) error {
	if err := app.Sync.Hydrate(ctx); err != nil {
		return fmt.Errorf("syncing with server: %w", err)
	}
	return nil
}

// NewRootCmd creates the top-level "pulse" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pulse",
		Short: "Team dashboard state, synced to your terminal",
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newSyncCmd(app),
		newSummaryCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newToDoCmd(app),
		newLeaveCmd(app),
		newNotifyCmd(app),
		newAuditCmd(app),
		newDashboardCmd(app),
	)

	return root
}
