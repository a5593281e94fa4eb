package main

import (
	"log/slog"
	"os"

	migrations "github.com/ghuser/inventory/migrations/inventory"
	"github.com/ghuser/inventory/pkg/config"
	"github.com/ghuser/inventory/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, migrations.FS); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
