// This adapter wires the Postgres backend into the storage-agnostic factory
// by registering a constructor at init time. The CLI obtains a Repository via
// storage.New(...) without importing this package directly.
package postgres

import (
	"context"
	"fmt"

	"odptload/internal/schema"
	"odptload/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo implements storage.Repository by delegating to the concrete
// *postgres.Repository while providing a Close method that calls the close
// function returned by NewRepository.
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

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	// DDL bootstrap: create the destination tables in dependency order so a
	// future foreign-key constraint can reference an existing table.
	storage.RegisterDDL("postgres", func(ctx context.Context, repo storage.Repository) error {
		ordered, err := schema.TopoOrder(schema.Tables)
		if err != nil {
			return err
		}
		for _, t := range ordered {
			if err := repo.Exec(ctx, BuildCreateTableSQL("public", t)); err != nil {
				return fmt.Errorf("create %s: %w", t.Name, err)
			}
		}
		return nil
	})
}
