package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/cli"
	"github.com/projectpulse/pulse/internal/config"
	"github.com/projectpulse/pulse/internal/localstate"
	"github.com/projectpulse/pulse/internal/service"
	"github.com/projectpulse/pulse/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	state, err := localstate.Open(cfg.Paths.ResolveStateFile())
	if err != nil {
		return fmt.Errorf("opening local state: %w", err)
	}
	defer state.Close()

	clock := func() time.Time { return time.Now().UTC() }

	var apiObserver api.Observer = api.NoopObserver{}
	var useCaseObservers []service.UseCaseObserver
	if cfg.Logging.Level == "debug" {
		apiObserver = api.NewLogObserver(os.Stderr)
		useCaseObservers = append(useCaseObservers, service.NewLogUseCaseObserver(os.Stderr))
	}

	client := api.New(cfg.Server.Endpoint, cfg.Server.Timeout(), apiObserver)
	st := store.New()
	dispatcher := service.NewDispatcher(st, client, clock, useCaseObservers...)

	app := &cli.App{
		Auth:     service.NewAuthService(client, state, clock, useCaseObservers...),
		Sync:     service.NewSyncService(st, client, clock, useCaseObservers...),
		Projects: service.NewProjectService(st, client, dispatcher, clock, useCaseObservers...),
		Tasks:    service.NewTaskService(st, client, dispatcher, clock, useCaseObservers...),
		ToDos:    service.NewToDoService(st, client, clock, useCaseObservers...),
		Leaves:   service.NewLeaveService(st, client, clock, useCaseObservers...),

		Store:   st,
		State:   state,
		Scanner: service.NewReminderScanner(st, cfg.Reminder.Interval(), cfg.Reminder.Lead(), clock),
		Clock:   clock,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
