package main

// Run database migrations:
//   go run ./cmd/migrate [--cmd up|down|status]

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/storage/db"
	"resume-parser/internal/shared/telemetry"
)

func main() {
	command := pflag.StringP("cmd", "c", "up", "migration command: up, down or status")
	pflag.Parse()

	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.missing_database_url", nil)
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch *command {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "status":
		err = db.MigrationStatus(ctx, sqlDB)
	default:
		telemetry.Error("migrate.unknown_command", map[string]any{"cmd": *command})
		os.Exit(2)
	}
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"cmd": *command, "err": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"cmd": *command})
}
