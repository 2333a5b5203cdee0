// Package datasource defines the minimal contract for byte sources feeding
// the pipeline (local files today; anything that can produce a reader).
package datasource

import (
	"context"
	"io"
)

// Source opens a stream of raw input bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
