package cli

import (
	"context"
	"fmt"

	"github.com/projectpulse/pulse/internal/cli/formatter"
	"github.com/projectpulse/pulse/internal/derive"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the full server snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hydrate(context.Background()); err != nil {
				return err
			}
			fmt.Printf("Synced %d projects, %d tasks, %d members, %d to-dos\n",
				len(app.Store.Projects()), len(app.Store.Tasks()),
				len(app.Store.Members()), len(app.Store.ToDos()))
			return nil
		},
	}
}

func newSummaryCmd(app *App) *cobra.Command {
	var noSync bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the executive summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !noSync {
				if err := app.hydrate(context.Background()); err != nil {
					return err
				}
			}
			s := derive.BuildSummary(app.Store.Projects(), app.Store.Tasks(), app.Store.Members(), app.now())
			fmt.Println(formatter.FormatSummary(s))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSync, "no-sync", false, "Use the local snapshot without refreshing")

	return cmd
}
