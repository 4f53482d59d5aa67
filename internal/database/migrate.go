package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/dreamer/schemas"
)

const migrationTable = "schema_migrations"

// Migrate applies the embedded schema migrations that were not applied yet.
// MySQL schemas are managed outside of the application, so only SQLite is migrated.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if db.DriverName() != sqliteDriverName {
		return nil
	}
	return ApplyMigrations(ctx, db, schemas.Migrations, "migrations")
}

// ApplyMigrations executes every .sql file under root of migrationFS at most once, in name order.
func ApplyMigrations(ctx context.Context, db *sqlx.DB, migrationFS fs.FS, root string) error {
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return fmt.Errorf("fs.ReadDir(%s) > %w", root, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("db.ExecContext(create %s) > %w", migrationTable, err)
	}

	for _, file := range files {
		applied, err := isApplied(ctx, db, file)
		if err != nil {
			return fmt.Errorf("isApplied(%s) > %w", file, err)
		}
		if applied {
			continue
		}

		content, err := fs.ReadFile(migrationFS, root+"/"+file)
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}
		up := extractUpMigration(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}

		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, up); err != nil {
				return fmt.Errorf("tx.ExecContext(%s) > %w", file, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
				file, time.Now().UTC().UnixMilli()); err != nil {
				return fmt.Errorf("tx.ExecContext(record %s) > %w", file, err)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// extractUpMigration returns the SQL of the "-- +migrate Up" section, or all of content without sections.
func extractUpMigration(content string) string {
	const upMarker, downMarker = "-- +migrate Up", "-- +migrate Down"
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	content = content[upIdx+len(upMarker):]
	if downIdx := strings.Index(content, downMarker); downIdx != -1 {
		return content[:downIdx]
	}
	return content
}

func isApplied(ctx context.Context, db *sqlx.DB, name string) (bool, error) {
	var found int
	err := db.GetContext(ctx, &found, "SELECT 1 FROM "+migrationTable+" WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
