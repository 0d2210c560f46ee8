package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"trivia-harvester/internal/config"
	"trivia-harvester/internal/database"
	"trivia-harvester/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.String("config", "", "Path to the config file")
	pflag.Parse()

	if err := run(*configFile); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// run returns instead of exiting so the database handle and logger are
// closed before the process ends.
func run(configFile string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.DatabaseEnabled() {
		return errors.New("db.host and db.name must be set to run migrations")
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l := logger.Get()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, l); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	l.Info("Migrations applied")
	return nil
}
