package sqlite

import (
	"context"
	"fmt"
	"strings"

	"odptload/internal/schema"
	"odptload/internal/storage"
)

var newRepository = NewRepository

type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

// mapType normalizes a logical column type onto a SQLite storage class.
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint", "bool", "boolean":
		return "INTEGER"
	case "double", "float", "real":
		return "REAL"
	default:
		return "TEXT"
	}
}

// buildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement; the
// first column is the primary key.
func buildCreateTableSQL(t schema.Table) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s %s", quoteIdent(c.Name), mapType(c.Type))
		if i == 0 {
			cols[i] += " PRIMARY KEY"
		}
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteIdent(t.Name), strings.Join(cols, ", "),
	)
}

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("sqlite", func(ctx context.Context, repo storage.Repository) error {
		ordered, err := schema.TopoOrder(schema.Tables)
		if err != nil {
			return err
		}
		for _, t := range ordered {
			if err := repo.Exec(ctx, buildCreateTableSQL(t)); err != nil {
				return fmt.Errorf("create %s: %w", t.Name, err)
			}
		}
		return nil
	})
}
