// Command fetch retrieves per-entity-type JSON from the ODPT open-data API
// and persists each batch under the run's output directory, both as the raw
// JSON payload and as a Parquet file with a loaded_at column appended. The
// load binary consumes these files; fetch never touches the destination
// database.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"odptload/internal/datasource/file"
	"odptload/internal/datasource/httpds"
	jsonparser "odptload/internal/parser/json"
	parquetparser "odptload/internal/parser/parquet"
)

// endpoint pairs a local entity-type name with its API resource.
type endpoint struct {
	Entity   string
	Resource string
}

// defaultEndpoints covers the entity families the load pipeline maps.
var defaultEndpoints = []endpoint{
	{Entity: "railway", Resource: "odpt:Railway"},
	{Entity: "station", Resource: "odpt:Station"},
	{Entity: "stops", Resource: "odpt:BusstopPole"},
}

func main() {
	var (
		baseURL   string
		key       string
		outDir    string
		listPath  string
		timeout   time.Duration
		noParquet bool
	)

	flag.StringVar(&baseURL, "base-url", "https://api.odpt.org/api/v4", "API base URL")
	flag.StringVar(&key, "key", "", "API consumer key (overrides env ODPT_API_KEY)")
	flag.StringVar(&outDir, "out", "output", "output directory for per-entity-type batches")
	flag.StringVar(&listPath, "endpoints", "", "optional endpoint list file (lines: \"<entity> <resource>\")")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	flag.BoolVar(&noParquet, "no-parquet", false, "skip writing Parquet batches")

	flag.Parse()

	if key == "" {
		key = os.Getenv("ODPT_API_KEY")
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "fetch: API key required (-key or ODPT_API_KEY)")
		os.Exit(1)
	}

	endpoints := defaultEndpoints
	if listPath != "" {
		eps, err := loadEndpoints(listPath)
		if err != nil {
			log.Fatalf("fetch: read endpoints: %v", err)
		}
		endpoints = eps
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("fetch: create out dir: %v", err)
	}

	client := httpds.NewClient(httpds.Config{
		Timeout:        timeout,
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
	})

	ctx := context.Background()
	loadedAt := time.Now().UTC()

	g, ctx := errgroup.WithContext(ctx)
	for _, ep := range endpoints {
		g.Go(func() error {
			return fetchOne(ctx, client, baseURL, key, outDir, ep, loadedAt, !noParquet)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("fetch: %v", err)
	}
	log.Printf("fetch: done, %d entity types under %s", len(endpoints), outDir)
}

// fetchOne retrieves one entity type and persists its batch files.
func fetchOne(
	ctx context.Context,
	client *httpds.Client,
	baseURL, key, outDir string,
	ep endpoint,
	loadedAt time.Time,
	writeParquet bool,
) error {
	u := fmt.Sprintf("%s/%s?acl:consumerKey=%s", strings.TrimRight(baseURL, "/"), ep.Resource, url.QueryEscape(key))

	resp, err := client.Get(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", ep.Entity, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("%s: status %s", ep.Entity, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", ep.Entity, err)
	}

	recs, err := jsonparser.DecodeAll(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", ep.Entity, err)
	}
	log.Printf("fetch: entity=%s records=%d bytes=%d fingerprint=%016x",
		ep.Entity, len(recs), len(body), xxh3.Hash(body))

	jsonPath := filepath.Join(outDir, ep.Entity+".json")
	if err := os.WriteFile(jsonPath, body, 0o644); err != nil {
		return fmt.Errorf("%s: write json: %w", ep.Entity, err)
	}

	if writeParquet {
		pqPath := filepath.Join(outDir, ep.Entity+".parquet")
		if err := parquetparser.WriteFile(pqPath, recs, loadedAt.UnixMilli()); err != nil {
			return fmt.Errorf("%s: %w", ep.Entity, err)
		}
	}
	return nil
}

// loadEndpoints parses an endpoint list file: one "<entity> <resource>" pair
// per line, comments and blank lines skipped.
func loadEndpoints(path string) ([]endpoint, error) {
	lines, err := file.ReadList(path)
	if err != nil {
		return nil, err
	}
	out := make([]endpoint, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed endpoint line %q (want \"<entity> <resource>\")", line)
		}
		out = append(out, endpoint{Entity: fields[0], Resource: fields[1]})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("endpoint list %s is empty", path)
	}
	return out, nil
}
