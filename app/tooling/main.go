package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hearthkeep/hearthkeep/app/tooling/commands"
	"github.com/hearthkeep/hearthkeep/infrastructure/postgresdb"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

const appName = "HEARTHKEEP"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		log = logger.NewDefault()
	}

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "tooling", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "" || command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(log.Logger)))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer pg.Close()

	switch command {
	case "migrate":
		return commands.Migrate(ctx, log, pg)

	case "seed-admin":
		return commands.SeedAdmin(ctx, log, pg)

	default:
		printHelp()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate    - create the schema in the database")
	fmt.Println("  seed-admin - create the initial admin user from HEARTHKEEP_ADMIN_* env vars")
}
