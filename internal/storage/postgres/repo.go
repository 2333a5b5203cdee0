// Package postgres implements the Postgres repository using pgx v5. The load
// applies every unit inside a single transaction: TRUNCATE ... RESTART
// IDENTITY CASCADE followed by a COPY of the unit's rows, per table, in the
// planner's dependency order.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"odptload/internal/plan"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN    string // connection string for pgxpool
	Schema string // destination schema; defaults to "public"
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool   *pgxpool.Pool
	schema string
}

// NewRepository constructs a Repository and returns a Close function for
// cleanup. Connection establishment failures surface here so the caller can
// fail fast before any transformation work begins.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pg ping: %w", err)
	}
	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool, schema: schema}, closeFn, nil
}

// ApplyUnits runs the full load as one transaction. Values travel through
// pgx's binary COPY protocol, never through spliced SQL text.
func (r *Repository) ApplyUnits(ctx context.Context, units []plan.LoadUnit) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// Rollback is a no-op after a successful commit.
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range units {
		truncate := fmt.Sprintf(
			"TRUNCATE TABLE %s.%s RESTART IDENTITY CASCADE",
			pgIdent(r.schema), pgIdent(u.Table),
		)
		if _, err := tx.Exec(ctx, truncate); err != nil {
			return fmt.Errorf("truncate %s: %w", u.Table, err)
		}
		if len(u.Rows) == 0 {
			continue
		}
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{r.schema, u.Table},
			u.Columns,
			pgx.CopyFromRows(u.Rows),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Detail != "" {
				return fmt.Errorf("copy into %s: %s (%s)", u.Table, pgErr.Detail, pgErr.SQLState())
			}
			return fmt.Errorf("copy into %s: %w", u.Table, err)
		}
		log.Printf("postgres: table=%s inserted=%d", u.Table, n)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Exec implements storage.Repository.Exec for Postgres.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	_, err := r.pool.Exec(ctx, sql)
	return err
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }
