package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"retainer-tracker/internal/api"
	"retainer-tracker/internal/cli"
	"retainer-tracker/internal/config"
	"retainer-tracker/internal/logging"
	"retainer-tracker/internal/repository/sqlite"
	"retainer-tracker/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := logging.Setup(cfg.Logging)

	if err := os.MkdirAll(cfg.Database.Dir, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	repo, err := sqlite.New(cfg.Database.Path())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	ctx := context.Background()

	// Workspace identity is fixed configuration. The row is created on first
	// run and every command operates inside it.
	if err := repo.EnsureWorkspace(ctx, cfg.Workspace.ID, cfg.Workspace.Name); err != nil {
		return fmt.Errorf("ensure workspace: %w", err)
	}

	timer := services.NewTimerService(repo, cfg.Workspace.ID)
	billing := services.NewBillingService(repo, cfg.Workspace.ID)
	reporting := services.NewReportingService(repo, cfg.Workspace.ID)
	apiInstance := api.New(repo, cfg.Workspace.ID, billing)

	if err := apiInstance.SeedSystemTags(ctx); err != nil {
		return fmt.Errorf("seed system tags: %w", err)
	}

	logger.Debug().
		Str("workspace", cfg.Workspace.ID).
		Str("database", cfg.Database.Path()).
		Msg("starting rt")

	app := cli.NewApp(apiInstance, timer, billing, reporting, cfg, logger, os.Stdout)

	root := app.RootCommand()
	// Leave remaining args to cobra after the -config flag is consumed.
	root.SetArgs(flag.Args())
	return root.ExecuteContext(ctx)
}
