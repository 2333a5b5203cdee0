package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"odptload/internal/plan"
)

// fakeRepo records the calls made through the Repository contract.
type fakeRepo struct {
	applied [][]plan.LoadUnit
	execs   []string
	closed  bool
}

func (f *fakeRepo) ApplyUnits(ctx context.Context, units []plan.LoadUnit) error {
	f.applied = append(f.applied, units)
	return nil
}

func (f *fakeRepo) Exec(ctx context.Context, sql string) error {
	f.execs = append(f.execs, sql)
	return nil
}

func (f *fakeRepo) Close() { f.closed = true }

func TestRegisterAndNew(t *testing.T) {
	repo := &fakeRepo{}
	Register("fake", func(ctx context.Context, cfg Config) (Repository, error) {
		if cfg.DSN != "fake://dsn" {
			return nil, fmt.Errorf("unexpected dsn %q", cfg.DSN)
		}
		return repo, nil
	})

	got, err := New(context.Background(), Config{Kind: "fake", DSN: "fake://dsn"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got != Repository(repo) {
		t.Fatal("New() did not return the registered repository")
	}

	kinds := Kinds()
	found := false
	for _, k := range kinds {
		if k == "fake" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Kinds() = %v, want to contain fake", kinds)
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "no-such-backend"})
	if err == nil {
		t.Fatal("New() error = nil, want unknown kind error")
	}
	if !strings.Contains(err.Error(), "no-such-backend") {
		t.Fatalf("New() error = %v, want mention of the requested kind", err)
	}
}

func TestNewFactoryError(t *testing.T) {
	wantErr := errors.New("connect refused")
	Register("broken", func(ctx context.Context, cfg Config) (Repository, error) {
		return nil, wantErr
	})

	_, err := New(context.Background(), Config{Kind: "broken"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("New() error = %v, want %v", err, wantErr)
	}
}

func TestEnsureTables(t *testing.T) {
	repo := &fakeRepo{}
	RegisterDDL("fake-ddl", func(ctx context.Context, r Repository) error {
		return r.Exec(ctx, "CREATE TABLE IF NOT EXISTS t (id TEXT)")
	})

	if err := EnsureTables(context.Background(), "fake-ddl", repo); err != nil {
		t.Fatalf("EnsureTables() error = %v", err)
	}
	if len(repo.execs) != 1 {
		t.Fatalf("Exec called %d times, want 1", len(repo.execs))
	}

	if err := EnsureTables(context.Background(), "unregistered", repo); err == nil {
		t.Fatal("EnsureTables() error = nil for unregistered kind")
	}
}
