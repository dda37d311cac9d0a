package storage

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// withMigrator builds a migrator for the leads schema, runs fn against it,
// and closes it.
func withMigrator(databaseURL, migrationsPath string, fn func(*migrate.Migrate) error) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	return fn(m)
}

// RunMigrations applies all pending migrations for the Postgres lead store.
func RunMigrations(databaseURL, migrationsPath string) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	})
}

// RollbackMigrations rolls back the most recent migration.
func RollbackMigrations(databaseURL, migrationsPath string) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		return nil
	})
}

// MigrationVersion returns the current migration version. A database with
// no applied migrations reports version 0, clean.
func MigrationVersion(databaseURL, migrationsPath string) (version uint, dirty bool, err error) {
	err = withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		v, d, verr := m.Version()
		if verr != nil && verr != migrate.ErrNilVersion {
			return fmt.Errorf("failed to get migration version: %w", verr)
		}
		version, dirty = v, d
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return version, dirty, nil
}
