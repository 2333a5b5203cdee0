// Package storage contains the storage-agnostic repository contract and the
// kind-keyed factory that concrete backends (postgres, sqlite) register
// themselves with at init time. Callers construct a Repository via New and
// stay fully backend-agnostic afterwards.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"odptload/internal/plan"
)

// Repository is the minimal contract the pipeline needs from a destination
// store.
type Repository interface {
	// ApplyUnits executes the full ordered sequence of load units as one
	// transaction: per unit, clear the table then insert its rows. Any failed
	// statement aborts the whole transaction, leaving the destination in its
	// prior state — never partially truncated.
	ApplyUnits(ctx context.Context, units []plan.LoadUnit) error

	// Exec runs a single standalone statement (used for DDL bootstrap).
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying connection resources.
	Close()
}

// Config selects and configures a backend.
type Config struct {
	Kind string // registered backend kind, e.g. "postgres", "sqlite"
	DSN  string // backend connection string
}

// Factory constructs a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind. It is called from
// backend packages' init functions; import odptload/internal/storage/all to
// enable every built-in backend.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New constructs a Repository for cfg.Kind. Unknown kinds list the registered
// alternatives in the error to make wiring mistakes obvious.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
