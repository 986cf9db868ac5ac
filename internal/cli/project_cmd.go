package cli

import (
	"context"
	"fmt"

	"github.com/projectpulse/pulse/internal/cli/formatter"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/service"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectTimerCmd(app),
		newProjectLogUsageCmd(app),
		newProjectDueCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hydrate(context.Background()); err != nil {
				return err
			}
			projects := app.Store.Projects()
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			fmt.Println(formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description, lead, team, parent, frequency, frequencyDetail string
	var weight int
	var allocated, expectedSaved float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			actor, err := app.actorID()
			if err != nil {
				return err
			}
			if err := app.hydrate(ctx); err != nil {
				return err
			}

			req := service.CreateProjectRequest{
				ActorID:         actor,
				Name:            name,
				Description:     description,
				LeadID:          lead,
				TeamID:          team,
				ParentID:        parent,
				Weight:          weight,
				AllocatedHours:  allocated,
				Frequency:       domain.Frequency(frequency),
				FrequencyDetail: frequencyDetail,
			}
			if cmd.Flags().Changed("expected-saved") {
				req.ExpectedSavedHours = &expectedSaved
			}

			p, err := app.Projects.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&lead, "lead", "", "Lead member id")
	cmd.Flags().StringVar(&team, "team", "", "Owning team id")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent project id")
	cmd.Flags().IntVar(&weight, "weight", 0, "Roll-up weight 1-100 (required with --parent)")
	cmd.Flags().Float64Var(&allocated, "allocated", 0, "Allocated hours")
	cmd.Flags().Float64Var(&expectedSaved, "expected-saved", 0, "Expected saved hours per period")
	cmd.Flags().Var(newEnumValue(&frequency,
		string(domain.FreqDaily), string(domain.FreqWeekly),
		string(domain.FreqMonthly), string(domain.FreqTwiceAMonth),
		string(domain.FreqThreeWeeksOnce), string(domain.FreqSpecificDates),
	), "frequency", "Usage cadence (Daily|Weekly|Monthly|Twice a month|3 Weeks Once|Specific Dates)")
	cmd.Flags().StringVar(&frequencyDetail, "frequency-detail", "", "Cadence detail, e.g. \"1,15\" or a JSON date array")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, description, status, lead, comment, feedback string
	var allocated, additional, expectedSaved float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
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

			upd := service.ProjectUpdate{ID: args[0], ActorID: actor}
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("lead") {
				upd.LeadID = &lead
			}
			if cmd.Flags().Changed("allocated") {
				upd.AllocatedHours = &allocated
			}
			if cmd.Flags().Changed("additional") {
				upd.AdditionalHours = &additional
			}
			if cmd.Flags().Changed("expected-saved") {
				upd.ExpectedSavedHours = &expectedSaved
			}
			if cmd.Flags().Changed("status") {
				st := domain.ProjectStatus(status)
				upd.Status = &st

				// The two terminal exception states refuse to land
				// without an explanation; prompt when none was given.
				switch st {
				case domain.ProjectCompletedNotSatisfied:
					if feedback == "" && app.interactive() {
						if err := commentForm("What went wrong for the end user?", &feedback).Run(); err != nil {
							return err
						}
					}
					upd.EndUserFeedback = &feedback
				case domain.ProjectCompletedBlocked:
					if comment == "" && app.interactive() {
						if err := commentForm("Why is this blocked?", &comment).Run(); err != nil {
							return err
						}
					}
					upd.ManagerComment = &comment
				}
			}

			p, err := app.Projects.Update(ctx, upd)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProject(*p))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&lead, "lead", "", "Lead member id")
	cmd.Flags().Float64Var(&allocated, "allocated", 0, "Allocated hours")
	cmd.Flags().Float64Var(&additional, "additional", 0, "Additional hours")
	cmd.Flags().Float64Var(&expectedSaved, "expected-saved", 0, "Expected saved hours per period")
	cmd.Flags().StringVar(&comment, "comment", "", "Manager comment (required for Completed (Blocked))")
	cmd.Flags().StringVar(&feedback, "feedback", "", "End-user feedback (required for Completed (End User Not Satisfied))")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project and its descendants",
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
			if err := app.Projects.Delete(ctx, args[0], actor); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", args[0])
			return nil
		},
	}
}

func newProjectTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control a project's work timer",
	}

	transition := func(verb string, call func(ctx context.Context, id, actor string) (*domain.Project, error)) *cobra.Command {
		return &cobra.Command{
			Use:   verb + " ID",
			Short: verb + " the work timer",
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
				p, err := call(ctx, args[0], actor)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s, %.1fh used\n", p.Name, formatter.TimerBadge(p.Timer().Phase), p.UsedHours)
				return nil
			},
		}
	}

	cmd.AddCommand(
		transition("start", app.Projects.StartTimer),
		transition("hold", app.Projects.HoldTimer),
		transition("end", app.Projects.EndTimer),
	)

	return cmd
}

func newProjectLogUsageCmd(app *App) *cobra.Command {
	var saved float64

	cmd := &cobra.Command{
		Use:   "log-usage ID",
		Short: "Record a usage run for a periodic project",
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
			p, err := app.Projects.LogUsage(ctx, args[0], actor, saved)
			if err != nil {
				return err
			}
			total := 0.0
			if p.SavedHours != nil {
				total = *p.SavedHours
			}
			fmt.Printf("Logged usage on %s (%.1fh saved, %.1fh lifetime)\n", p.Name, saved, total)
			return nil
		},
	}

	cmd.Flags().Float64Var(&saved, "saved", 0, "Hours saved by this run")

	return cmd
}

func newProjectDueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List periodic projects due for a usage log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hydrate(context.Background()); err != nil {
				return err
			}
			due := app.Projects.DueForUsage(app.now())
			if len(due) == 0 {
				fmt.Println("Nothing due.")
				return nil
			}
			for _, p := range due {
				detail := string(p.Frequency)
				if p.FrequencyDetail != "" {
					detail += " (" + p.FrequencyDetail + ")"
				}
				fmt.Printf("%s  %s\n", formatter.Bold(p.Name), formatter.Dim(detail))
			}
			return nil
		},
	}
}
