package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	migrations "github.com/ghuser/inventory/migrations/inventory"
	"github.com/ghuser/inventory/pkg/app"
	"github.com/ghuser/inventory/pkg/config"
	"github.com/ghuser/inventory/pkg/database"
	"github.com/ghuser/inventory/pkg/logger"
	"github.com/ghuser/inventory/pkg/migrator"
	categorysvcs "github.com/ghuser/inventory/services/category/application/services"
)

// seed applies pending migrations, then installs the default category set.
// Running it again refreshes the same set.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()

	if err := migrator.Up(pool.DB(), migrations.FS); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	svcs := categorysvcs.New(&app.Application{Config: cfg, Db: pool, Logger: log})
	cats, err := svcs.Category.Seed(ctx, categorysvcs.DefaultCategories)
	if err != nil {
		log.Error("seeding categories failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	for _, c := range cats {
		log.Info("category ready", "name", c.Name, "slug", c.Slug, "id", c.ID)
	}
}
