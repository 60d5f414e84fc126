package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"ems/internal/platform/dbutil"
	"ems/migrations"
)

// Migrate applies every embedded migration for driver that is not yet
// recorded in schema_migrations, each in its own transaction.
func Migrate(ctx context.Context, conn *sql.DB, driver string) error {
	if err := ensureMigrationsTable(ctx, conn); err != nil {
		return err
	}

	files, err := migrationFiles(migrations.FS, driver)
	if err != nil {
		return err
	}

	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".sql")
		applied, err := migrationApplied(ctx, conn, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		body, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return err
		}

		err = dbutil.WithTx(ctx, conn, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(body)); err != nil {
				return fmt.Errorf("migration %s failed: %w", version, err)
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func migrationFiles(fsys fs.FS, driver string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, driver)
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %q: %w", driver, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, path.Join(driver, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func ensureMigrationsTable(ctx context.Context, conn *sql.DB) error {
	_, err := conn.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)")
	return err
}

func migrationApplied(ctx context.Context, conn *sql.DB, version string) (bool, error) {
	var count int
	err := conn.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = $1", version).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
