package cli

import (
	"context"
	"fmt"

	"github.com/projectpulse/pulse/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Session notifications",
	}

	cmd.AddCommand(newNotifyListCmd(app), newNotifyReadCmd(app))

	return cmd
}

func newNotifyListCmd(app *App) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications := app.Store.Notifications()
			shown := 0
			for _, n := range notifications {
				if unreadOnly && n.IsRead {
					continue
				}
				marker := formatter.StyleHeader.Render("●")
				if n.IsRead {
					marker = formatter.Dim("○")
				}
				fmt.Printf("%s %s  %s %s\n", marker, n.Message,
					formatter.Dim(n.Link), formatter.Dim("["+n.ID+"]"))
				shown++
			}
			if shown == 0 {
				fmt.Println("No notifications this session.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notifications")

	return cmd
}

func newNotifyReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark a notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Store.MarkNotificationRead(args[0])
			return nil
		},
	}
}

func newAuditCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit feed, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hydrate(context.Background()); err != nil {
				return err
			}
			entries := app.Store.AuditLog()
			if len(entries) == 0 {
				fmt.Println("Audit log is empty.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			headers := []string{"WHEN", "WHO", "ACTION", "ENTITY", "DETAILS"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Timestamp.Format("2006-01-02 15:04"),
					e.UserID,
					e.Action,
					e.EntityType + "/" + e.EntityID,
					e.Details,
				})
			}
			fmt.Println(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum entries to show (0 = all)")

	return cmd
}
