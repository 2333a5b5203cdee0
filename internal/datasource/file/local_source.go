// Package file implements a local filesystem-backed data source. The
// pipeline reads one batch file per source entity type from a per-run
// directory; the fetch step is responsible for putting them there.
package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"odptload/internal/datasource"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

var _ datasource.Source = (*Local)(nil)

// NewLocal returns a Local data source bound to the provided path. The
// returned value is safe for concurrent use as long as the underlying
// location is valid for concurrent reads.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading.
//
// Behavior:
//   - If ctx is already canceled, Open returns the context error immediately
//     without touching the filesystem.
//   - Filesystem errors are wrapped while still permitting errors.Is checks
//     (e.g. errors.Is(err, os.ErrNotExist), which the pipeline uses to treat
//     a missing entity-type batch as skip-with-warning rather than a
//     failure). The *os.PathError already carries the operation and path, so
//     the wrap adds only the source kind.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		// os.Open already reports the operation and path.
		return nil, fmt.Errorf("local source: %w", err)
	}
	return f, nil
}
