// Package dbtest starts a disposable PostgreSQL for repository tests.
//
// Tests that call Start are skipped unless INTEGRATION_TESTS is set, since
// they need a Docker daemon.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	migrations "github.com/ghuser/inventory/migrations/inventory"
	"github.com/ghuser/inventory/pkg/database"
	"github.com/ghuser/inventory/pkg/logger"
	"github.com/ghuser/inventory/pkg/migrator"
)

// EnvVar enables the container-backed tests.
const EnvVar = "INTEGRATION_TESTS"

// Start runs a migrated PostgreSQL container and returns a pool connected to
// it. The container is removed when t finishes.
func Start(t *testing.T) *database.Database {
	t.Helper()
	if testing.Short() || os.Getenv(EnvVar) == "" {
		t.Skipf("set %s=1 to run database tests", EnvVar)
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("inventory"),
		postgres.WithUsername("inventory"),
		postgres.WithPassword("inventory"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewPool(ctx, url, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, migrator.Up(db.DB(), migrations.FS))
	return db
}
