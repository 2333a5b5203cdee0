package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "railway.json")
	if err := os.WriteFile(path, []byte(`[{"owl:sameAs":"a.b"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src := NewLocal(path)
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != `[{"owl:sameAs":"a.b"}]` {
		t.Fatalf("read %q", body)
	}
}

func TestLocalOpenMissingFile(t *testing.T) {
	t.Parallel()

	src := NewLocal(filepath.Join(t.TempDir(), "absent.json"))
	_, err := src.Open(context.Background())
	if err == nil {
		t.Fatal("Open() error = nil for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open() error = %v, want errors.Is(os.ErrNotExist)", err)
	}
}

func TestLocalOpenErrorNamesPathOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.json")
	_, err := NewLocal(path).Open(context.Background())
	if err == nil {
		t.Fatal("Open() error = nil for missing file")
	}
	// The *os.PathError already carries "open <path>"; the wrap must not
	// repeat either part.
	msg := err.Error()
	if got := strings.Count(msg, path); got != 1 {
		t.Fatalf("error names the path %d times, want 1: %q", got, msg)
	}
	if got := strings.Count(msg, "open "); got != 1 {
		t.Fatalf("error says %q %d times, want 1: %q", "open ", got, msg)
	}
}

func TestLocalOpenCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewLocal("irrelevant")
	_, err := src.Open(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Open() error = %v, want context.Canceled", err)
	}
}

func TestReadList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "endpoints.txt")
	content := `# entity resource
railway odpt:Railway

station odpt:Station
  # indented comment
stops odpt:BusstopPole
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lines, err := ReadList(path)
	if err != nil {
		t.Fatalf("ReadList() error = %v", err)
	}
	want := []string{"railway odpt:Railway", "station odpt:Station", "stops odpt:BusstopPole"}
	if len(lines) != len(want) {
		t.Fatalf("ReadList() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReadListMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := ReadList(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("ReadList() error = nil for missing file")
	}
}
