package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/database"
)

const migrationsPath = "internal/database/migrations"

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, create)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}
	subcmd := args[0]

	// up uses the migrations embedded in the binary, same as the server on startup
	if subcmd == "up" {
		return migrateUp()
	}

	gooseCmd := "go"
	gooseArgs := []string{"run", "github.com/pressly/goose/v3/cmd/goose", "-dir", migrationsPath}

	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		migrationType := "sql"
		if len(args) > 2 {
			migrationType = args[2]
		}
		gooseArgs = append(gooseArgs, "create", args[1], migrationType)
		return runCommandVerbose(gooseCmd, gooseArgs...)
	}

	gooseArgs = append(gooseArgs, "postgres", databaseURL(), subcmd)
	// extra args, e.g. the version for up-to/down-to
	if len(args) > 1 {
		gooseArgs = append(gooseArgs, args[1:]...)
	}
	return runCommandVerbose(gooseCmd, gooseArgs...)
}

func migrateUp() error {
	PrintHeader("Applying migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, databaseURL(), 2, time.Minute, time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	PrintSuccess("Migrations applied")
	return nil
}
