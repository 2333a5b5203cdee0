package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"odptload/internal/datasource/httpds"
	parquetparser "odptload/internal/parser/parquet"
)

func TestLoadEndpoints(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "endpoints.txt")
	content := `# entity resource
railway odpt:Railway
stops odpt:BusstopPole
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	eps, err := loadEndpoints(path)
	if err != nil {
		t.Fatalf("loadEndpoints() error = %v", err)
	}
	want := []endpoint{
		{Entity: "railway", Resource: "odpt:Railway"},
		{Entity: "stops", Resource: "odpt:BusstopPole"},
	}
	if len(eps) != len(want) {
		t.Fatalf("loadEndpoints() = %v, want %v", eps, want)
	}
	for i := range want {
		if eps[i] != want[i] {
			t.Fatalf("endpoint %d = %v, want %v", i, eps[i], want[i])
		}
	}
}

func TestLoadEndpointsMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "endpoints.txt")
	if err := os.WriteFile(path, []byte("railway\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := loadEndpoints(path); err == nil {
		t.Fatal("loadEndpoints() error = nil for malformed line")
	}
}

func TestLoadEndpointsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "endpoints.txt")
	if err := os.WriteFile(path, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := loadEndpoints(path); err == nil {
		t.Fatal("loadEndpoints() error = nil for empty list")
	}
}

func TestFetchOne(t *testing.T) {
	t.Parallel()

	payload := `[{"owl:sameAs": "odpt.Railway:JR-East.ChuoRapid", "odpt:lineCode": "JC"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("acl:consumerKey"); got != "secret" {
			t.Errorf("consumer key = %q, want secret", got)
		}
		if !strings.HasSuffix(r.URL.Path, "/odpt:Railway") {
			t.Errorf("path = %q, want .../odpt:Railway", r.URL.Path)
		}
		io.WriteString(w, payload)
	}))
	defer server.Close()

	client := httpds.NewClient(httpds.Config{Timeout: 2 * time.Second})
	outDir := t.TempDir()
	ep := endpoint{Entity: "railway", Resource: "odpt:Railway"}
	loadedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	if err := fetchOne(context.Background(), client, server.URL, "secret", outDir, ep, loadedAt, true); err != nil {
		t.Fatalf("fetchOne() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(outDir, "railway.json"))
	if err != nil {
		t.Fatalf("read raw json: %v", err)
	}
	if string(raw) != payload {
		t.Fatalf("raw json = %q, want the upstream payload verbatim", raw)
	}

	recs, err := parquetparser.ReadFile(filepath.Join(outDir, "railway.parquet"))
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("parquet has %d records, want 1", len(recs))
	}
	if got := recs[0].String("owl:sameAs"); got != "odpt.Railway:JR-East.ChuoRapid" {
		t.Fatalf("parquet owl:sameAs = %q", got)
	}
	if !recs[0].Has(parquetparser.LoadedAtColumn) {
		t.Fatal("parquet record missing loaded_at column")
	}
}

func TestFetchOneUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := httpds.NewClient(httpds.Config{Timeout: 2 * time.Second})
	ep := endpoint{Entity: "railway", Resource: "odpt:Railway"}

	err := fetchOne(context.Background(), client, server.URL, "bad-key", t.TempDir(), ep, time.Now(), false)
	if err == nil {
		t.Fatal("fetchOne() error = nil for 403 upstream")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("fetchOne() error = %v, want mention of status", err)
	}
}
