package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/projectpulse/pulse/internal/cli/formatter"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/service"
	"github.com/spf13/cobra"
)

func newToDoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage personal to-dos",
	}

	cmd.AddCommand(
		newToDoListCmd(app),
		newToDoAddCmd(app),
		newToDoDoneCmd(app),
		newToDoRemoveCmd(app),
	)

	return cmd
}

func newToDoListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your to-dos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hydrate(context.Background()); err != nil {
				return err
			}
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			var todos []domain.ToDo
			for _, td := range app.Store.ToDos() {
				if td.OwnerID != actor {
					continue
				}
				if td.IsComplete && !all {
					continue
				}
				todos = append(todos, td)
			}
			if len(todos) == 0 {
				fmt.Println("Nothing on your list.")
				return nil
			}
			fmt.Println(formatter.FormatToDoList(todos))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include completed to-dos")

	return cmd
}

func newToDoAddCmd(app *App) *cobra.Command {
	var title, due, dueTime, frequency string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a to-do",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			dueDate, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("invalid due date %q: %w", due, err)
			}

			td, err := app.ToDos.Create(ctx, service.CreateToDoRequest{
				OwnerID:   actor,
				Title:     title,
				DueDate:   dueDate,
				DueTime:   dueTime,
				Frequency: domain.ToDoFrequency(frequency),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added to-do %s [%s]\n", td.Title, td.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "What needs doing")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dueTime, "at", "", "Due time (HH:MM)")
	cmd.Flags().Var(newEnumValue(&frequency,
		string(domain.ToDoOnce), string(domain.ToDoDaily),
		string(domain.ToDoWeekly), string(domain.ToDoMonthly),
	), "frequency", "Once|Daily|Weekly|Monthly (default Once)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newToDoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a to-do complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.hydrate(ctx); err != nil {
				return err
			}
			td, err := app.ToDos.Complete(ctx, args[0])
			if err != nil {
				return err
			}
			if td.IsComplete {
				fmt.Printf("Done: %s\n", td.Title)
			} else {
				fmt.Printf("Done: %s (next due %s)\n", td.Title, td.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newToDoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a to-do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.hydrate(ctx); err != nil {
				return err
			}
			if err := app.ToDos.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed to-do %s\n", args[0])
			return nil
		},
	}
}
