// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. SQLite has no TRUNCATE, so each unit clears its table with
// DELETE before a prepared batched INSERT; the whole load still runs inside
// one transaction. Intended for local runs and tests where a Postgres
// instance is not available.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"odptload/internal/plan"
)

// Config holds SQLite repository configuration.
type Config struct {
	// DSN is passed directly to database/sql, e.g.
	// "file:odpt.db?cache=shared&_fk=1" or a bare path.
	DSN string
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a SQLite connection and returns a Repository plus a
// Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;")

	closeFn := func() { db.Close() }
	return &Repository{db: db}, closeFn, nil
}

// ApplyUnits clears and reloads every table inside one transaction.
func (r *Repository) ApplyUnits(ctx context.Context, units []plan.LoadUnit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}

	for _, u := range units {
		if err := applyUnit(ctx, tx, u); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func applyUnit(ctx context.Context, tx *sql.Tx, u plan.LoadUnit) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(u.Table)); err != nil {
		return fmt.Errorf("sqlite: clear %s: %w", u.Table, err)
	}
	if len(u.Rows) == 0 {
		return nil
	}

	placeholders := make([]string, len(u.Columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(u.Table),
		strings.Join(u.Columns, ", "),
		strings.Join(placeholders, ", "),
	)
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert %s: %w", u.Table, err)
	}
	defer stmt.Close()

	for _, row := range u.Rows {
		if len(row) != len(u.Columns) {
			return fmt.Errorf("sqlite: table %s: row length %d != columns length %d", u.Table, len(row), len(u.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("sqlite: insert into %s: %w", u.Table, err)
		}
	}
	return nil
}

// Exec implements storage.Repository.Exec for SQLite.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	_, err := r.db.ExecContext(ctx, sql)
	return err
}

func quoteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }
