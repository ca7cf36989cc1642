package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// Migrate applies the embedded goose migrations against the database at url
func Migrate(ctx context.Context, url, direction string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	return MigrateDB(ctx, db, direction)
}

// MigrateDB applies the embedded migrations over an already open connection
func MigrateDB(ctx context.Context, db *sql.DB, direction string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch direction {
	case MigrateUp:
		err := goose.UpContext(ctx, db, migrationsDir)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	case MigrateDown:
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case MigrateStatus:
		if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	return nil
}
