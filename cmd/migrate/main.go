package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m04kA/RainbowPaws-BookingService/internal/config"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
)

const usage = "usage: migrate <up|down|step-up|drop> [config.toml]"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}
	action := os.Args[1]

	configPath := "config.toml"
	if len(os.Args) > 2 {
		configPath = os.Args[2]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	m, err := migrate.New(cfg.Database.MigrationsPath, cfg.Database.URL())
	if err != nil {
		log.Fatal("Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	if err := run(m, action); err != nil {
		log.Fatal("Migration %q failed: %v", action, err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("Migration %q completed, schema is empty", action)
	case err != nil:
		log.Warn("Migration %q completed, but version is unknown: %v", action, err)
	default:
		log.Info("Migration %q completed, version=%d, dirty=%t", action, version, dirty)
	}
}

func run(m *migrate.Migrate, action string) error {
	var err error
	switch action {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "step-up":
		err = m.Steps(1)
	case "drop":
		err = m.Down()
	default:
		return fmt.Errorf("unknown action %q, %s", action, usage)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
