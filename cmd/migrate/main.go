package main

import (
	"context"
	"log/slog"
	"os"

	employeemigrations "github.com/ghuser/bizdesk/migrations/employee"
	"github.com/ghuser/bizdesk/pkg/config"
	"github.com/ghuser/bizdesk/pkg/logger"
	"github.com/ghuser/bizdesk/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, employeemigrations.FS); err != nil {
		log.Error("employee migrations failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "context", "employee")
}
