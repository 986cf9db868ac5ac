package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/projectpulse/pulse/internal/cli/formatter"
	"github.com/projectpulse/pulse/internal/service"
	"github.com/spf13/cobra"
)

func newLeaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Manage leave entries",
	}

	cmd.AddCommand(
		newLeaveListCmd(app),
		newLeaveAddCmd(app),
		newLeaveRemoveCmd(app),
	)

	return cmd
}

func newLeaveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List leave entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hydrate(context.Background()); err != nil {
				return err
			}
			leaves := app.Store.Leaves()
			if len(leaves) == 0 {
				fmt.Println("No leave entries.")
				return nil
			}
			headers := []string{"ID", "MEMBER", "FROM", "TO", "REASON"}
			rows := make([][]string, 0, len(leaves))
			for _, l := range leaves {
				rows = append(rows, []string{
					l.ID, l.MemberID,
					l.StartDate.Format("2006-01-02"),
					l.EndDate.Format("2006-01-02"),
					l.Reason,
				})
			}
			fmt.Println(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newLeaveAddCmd(app *App) *cobra.Command {
	var member, from, to, reason string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a leave entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if member == "" {
				actor, err := app.actorID()
				if err != nil {
					return err
				}
				member = actor
			}
			start, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", from, err)
			}
			end := start
			if to != "" {
				end, err = time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", to, err)
				}
			}

			l, err := app.Leaves.Create(ctx, service.CreateLeaveRequest{
				MemberID:  member,
				StartDate: start,
				EndDate:   end,
				Reason:    reason,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded leave %s to %s [%s]\n",
				l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&member, "member", "", "Member id (defaults to you)")
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD, defaults to --from)")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func newLeaveRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a leave entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.hydrate(ctx); err != nil {
				return err
			}
			if err := app.Leaves.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed leave %s\n", args[0])
			return nil
		},
	}
}
