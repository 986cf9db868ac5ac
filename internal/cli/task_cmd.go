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

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks, issues and blocked items",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskRiskCmd(app),
		newTaskUpdateCmd(app),
		newTaskCompleteCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func parseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline %q: %w", s, err)
	}
	return &d, nil
}

func newTaskListCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hydrate(context.Background()); err != nil {
				return err
			}
			tasks := app.Store.Tasks()
			if projectID != "" {
				tasks = app.Store.TasksForProject(projectID)
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Println(formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks of this project")

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectID, title, description, taskType, priority, severity, assignee, deadline string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task or issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}
			dl, err := parseDeadline(deadline)
			if err != nil {
				return err
			}

			task, err := app.Tasks.Create(ctx, service.CreateTaskRequest{
				ActorID:     actor,
				ProjectID:   projectID,
				Title:       title,
				Description: description,
				Type:        domain.TaskType(taskType),
				Priority:    priority,
				Severity:    severity,
				Deadline:    dl,
				AssigneeID:  assignee,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created %s %s [%s]\n", task.Type, task.Title, task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&taskType, "type", "task", "Task type (task|issue)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee member id")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskRiskCmd(app *App) *cobra.Command {
	var projectID, reason, customReason, description, severity, assignee, deadline string

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Flag a project as blocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}
			if reason == "" && app.interactive() {
				if err := riskReasonForm(&reason).Run(); err != nil {
					return err
				}
				if reason == "Other" && customReason == "" {
					if err := commentForm("Describe the blocker", &customReason).Run(); err != nil {
						return err
					}
				}
			}
			dl, err := parseDeadline(deadline)
			if err != nil {
				return err
			}

			task, err := app.Tasks.CreateRisk(ctx, service.CreateRiskRequest{
				ActorID:      actor,
				ProjectID:    projectID,
				Reason:       reason,
				CustomReason: customReason,
				Description:  description,
				Severity:     severity,
				Deadline:     dl,
				AssigneeID:   assignee,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Flagged blocked: %s [%s]\n", task.Title, task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&reason, "reason", "", "Blocked reason (prompted when omitted)")
	cmd.Flags().StringVar(&customReason, "custom-reason", "", "Free-text reason when --reason=Other")
	cmd.Flags().StringVar(&description, "description", "", "Details")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee member id")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, description, status, priority, severity, assignee, deadline, statusReason, difficulty string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}

			upd := service.TaskUpdate{ID: args[0], ActorID: actor}
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("status") {
				st := domain.TaskStatus(status)
				upd.Status = &st
			}
			if cmd.Flags().Changed("priority") {
				upd.Priority = &priority
			}
			if cmd.Flags().Changed("severity") {
				upd.Severity = &severity
			}
			if cmd.Flags().Changed("assignee") {
				upd.AssigneeID = &assignee
			}
			if cmd.Flags().Changed("status-reason") {
				upd.StatusReason = &statusReason
			}
			if cmd.Flags().Changed("difficulty") {
				upd.Difficulty = &difficulty
			}
			if cmd.Flags().Changed("deadline") {
				dl, err := parseDeadline(deadline)
				if err != nil {
					return err
				}
				upd.Deadline = dl
			}

			task, err := app.Tasks.Update(ctx, upd)
			if err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee member id")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&statusReason, "status-reason", "", "Why the task is in this status")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Perceived difficulty")

	return cmd
}

func newTaskCompleteCmd(app *App) *cobra.Command {
	var timeSpent, timeSaved float64
	var reference string

	cmd := &cobra.Command{
		Use:   "complete ID",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}
			task, err := app.Tasks.Complete(ctx, service.CompleteTaskRequest{
				ID:                  args[0],
				ActorID:             actor,
				TimeSpent:           timeSpent,
				TimeSaved:           timeSaved,
				CompletionReference: reference,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Completed %s\n", task.Title)
			return nil
		},
	}

	cmd.Flags().Float64Var(&timeSpent, "time-spent", 0, "Hours spent")
	cmd.Flags().Float64Var(&timeSaved, "time-saved", 0, "Hours saved")
	cmd.Flags().StringVar(&reference, "reference", "", "Completion reference, e.g. a PR link")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, args[0], actor); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", args[0])
			return nil
		},
	}
}
