package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/sheldcoop/aoi-app/adapters/postgres"
	"github.com/sheldcoop/aoi-app/internal/config"
	"github.com/sheldcoop/aoi-app/internal/errors"
	"github.com/sheldcoop/aoi-app/ui"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the defect analysis API server",
		Long: `Serve starts the HTTP API. Upload a defect file to POST /api/dataset
and query /api/defect-map, /api/pareto, /api/summary and /api/comparison
against the loaded snapshot.

When DATABASE_URL (or database.url in the config file) is set, each
uploaded snapshot is persisted and the latest one is restored on start,
so a restarted server serves the same marker positions.`,
		RunE: runServeCmd,
	}
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("[serve] No .env file loaded: %v", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var store ui.SnapshotStore
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return errors.Wrap(err, "failed to connect to snapshot database")
		}

		repo := postgres.NewSnapshotRepository(db)
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		store = repo
		log.Printf("[serve] Snapshot persistence enabled")
	} else {
		log.Printf("[serve] DATABASE_URL not set, running without persistence")
	}

	app := ui.NewApp(cfg, store)
	if err := app.RestoreLatest(cmd.Context()); err != nil {
		// A broken persisted snapshot should not keep the server down.
		log.Printf("[serve] Failed to restore latest snapshot: %v", err)
	}

	return app.Run()
}
