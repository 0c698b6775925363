package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/trestle/internal/cli"
	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/alexanderramin/trestle/internal/config"
	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/repository"
	"github.com/alexanderramin/trestle/internal/service"
	"github.com/mattn/go-isatty"
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
		return err
	}
	formatter.DateLayout = cfg.DateFormat

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWbsItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, observers...),
		Wbs:      service.NewWbsService(itemRepo, uow, observers...),
		Deps:     service.NewDependencyService(itemRepo, depRepo, uow, observers...),
		Schedule: service.NewScheduleService(projectRepo, itemRepo, uow, observers...),
		Cost:     service.NewCostService(projectRepo, itemRepo, observers...),
		Import:   service.NewImportService(uow, observers...),
		Config:   &cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
