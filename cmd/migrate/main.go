package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/tlca-systems/register-backend/pkg/config"
	"github.com/tlca-systems/register-backend/pkg/db"
	"github.com/tlca-systems/register-backend/pkg/logger"
	"github.com/tlca-systems/register-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if !cfg.DB.Configured() {
		logg.Error(ctx, "remote store DSN is required to run migrations", nil)
		os.Exit(1)
	}

	client, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := client.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	sqlDB, err := client.DB().DB()
	requireResource(ctx, logg, "sql handle", err)

	ctx = logg.WithFields(ctx, map[string]any{"cmd": *cmd, "dir": *dir})
	logg.Info(ctx, "running goose")

	if err := migrate.Run(ctx, sqlDB, *dir, *cmd, flag.Args()...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migration complete")
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err != nil {
		logg.Error(ctx, fmt.Sprintf("failed to bootstrap %s", name), err)
		os.Exit(1)
	}
}
