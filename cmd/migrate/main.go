// Package main provides a CLI tool for running database migrations for the
// Postgres lead store backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/leadstack/internal/config"
	"github.com/leadstack/internal/storage"
)

func main() {
	var (
		action = flag.String("action", "up", "Migration action: up, down, version")
		path   = flag.String("path", "internal/storage/migrations", "Migrations directory")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if _, err := os.Stat(*path); os.IsNotExist(err) {
		log.Fatalf("Migrations directory not found: %s", *path)
	}

	if err := run(cfg, *action, *path); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func run(cfg *config.Config, action, migrationsPath string) error {
	databaseURL := storage.ConnectionURL(&cfg.Database.Postgres)

	switch action {
	case "up":
		log.Println("Running migrations...")
		if err := storage.RunMigrations(databaseURL, migrationsPath); err != nil {
			return err
		}
		log.Println("Migrations completed successfully")

	case "down":
		log.Println("Rolling back last migration...")
		if err := storage.RollbackMigrations(databaseURL, migrationsPath); err != nil {
			return err
		}
		log.Println("Migration rolled back successfully")

	case "version":
		version, dirty, err := storage.MigrationVersion(databaseURL, migrationsPath)
		if err != nil {
			return err
		}
		log.Printf("Current migration version: %d (dirty: %v)", version, dirty)

	default:
		return fmt.Errorf("unknown action: %s", action)
	}

	return nil
}
