package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/avermeer/scribe/internal/cli"
	"github.com/avermeer/scribe/internal/config"
	"github.com/avermeer/scribe/internal/db"
	"github.com/avermeer/scribe/internal/identity"
	"github.com/avermeer/scribe/internal/repository"
	"github.com/avermeer/scribe/internal/service"
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
		return fmt.Errorf("loading config: %w", err)
	}

	// lipgloss and huh both honor NO_COLOR through termenv.
	if !cfg.Color {
		os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work.
	sectionRepo := repository.NewSQLiteSectionRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Both services share the lock set so outline and timeline writes for
	// one owner serialize against each other.
	locks := service.NewOwnerLocks()

	app := &cli.App{
		Outline:  service.NewOutlineService(sectionRepo, uow, locks),
		Timeline: service.NewTimelineService(phaseRepo, taskRepo, uow, locks, time.Now),
		Identity: identity.Static{Owner: cfg.Owner},
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
