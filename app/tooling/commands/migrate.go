// Package commands holds the operational subcommands of the tooling binary.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthkeep/hearthkeep/infrastructure/postgresdb"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Migrate creates the schema in the database.
func Migrate(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := postgresdb.StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("database status check: %w", err)
	}

	log.Info(ctx, "migration started")

	if err := postgresdb.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.Info(ctx, "migration complete")
	return nil
}
