package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBootstrapper creates the destination tables for one backend kind,
// typically via CREATE TABLE IF NOT EXISTS statements applied through
// Repository.Exec. Backends register their implementation at init time next
// to their repository factory.
type DDLBootstrapper func(ctx context.Context, repo Repository) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) the DDLBootstrapper for kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTables invokes the DDL bootstrapper registered for kind. Callers do
// not need to know which backend they are using; they pass the already-open
// Repository and the kind it was built from.
func EnsureTables(ctx context.Context, kind string, repo Repository) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no DDL bootstrapper registered for kind %q", kind)
	}
	return fn(ctx, repo)
}
