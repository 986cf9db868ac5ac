package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/projectpulse/pulse/internal/tui"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("dashboard requires an interactive terminal")
			}
			if _, err := app.actorID(); err != nil {
				return err
			}

			model := tui.New(app.Store, app.Sync, app.Scanner, app.Clock)
			if app.State != nil {
				if saved, ok, _ := app.State.LoadActiveTab(); ok {
					model.RestoreTab(saved)
				}
				model.SaveTab = func(tab string) {
					_ = app.State.SaveActiveTab(tab)
				}
			}

			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}
