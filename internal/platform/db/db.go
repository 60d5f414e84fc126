package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"ems/internal/platform/config"
)

// Connect opens the configured database and verifies it answers a ping.
func Connect(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		conn, err = sql.Open("sqlite3", sqliteDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, err
		}
		// One connection keeps ":memory:" databases alive and serialises writers.
		conn.SetMaxOpenConns(1)
	case config.DriverPostgres:
		conn, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(2)
		conn.SetConnMaxLifetime(time.Hour)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	return conn, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}
