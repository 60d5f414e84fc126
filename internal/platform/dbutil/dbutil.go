// Package dbutil holds the small helpers shared by the SQL stores. Every
// query they run is valid on both Postgres and SQLite.
package dbutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NextID returns max(id)+1 for table. Callers run it inside the transaction
// that performs the insert.
func NextID(ctx context.Context, q Querier, table string) (int64, error) {
	var next int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(id), 0) + 1 FROM %s", table)
	if err := q.QueryRowContext(ctx, query).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// WithTx runs fn inside a transaction and commits when fn returns nil.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// IsUniqueViolation reports whether err is a unique or primary key conflict
// from either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsUniqueViolationOn narrows IsUniqueViolation to one column. Postgres names
// the constraint <table>_<column>_key, or <table>_pkey for the id; SQLite
// reports "UNIQUE constraint failed: <table>.<column>".
func IsUniqueViolationOn(err error, table, column string) bool {
	if !IsUniqueViolation(err) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.TableName != "" && pgErr.TableName != table {
			return false
		}
		if pgErr.ConstraintName == table+"_"+column+"_key" {
			return true
		}
		return column == "id" && pgErr.ConstraintName == table+"_pkey"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), table+"."+column)
	}
	return false
}
