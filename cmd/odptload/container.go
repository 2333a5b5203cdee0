// Package main wires the load pipeline end-to-end: per-entity-type read and
// filter, typed transformation into destination rows, dependency-ordered load
// planning, and delivery through either the storage backend or the SQL script
// writer. This file keeps the CLI layer thin: delivery depends only on the
// storage-agnostic interfaces and never imports database drivers directly.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"odptload/internal/config"
	"odptload/internal/datasource/file"
	"odptload/internal/metrics"
	"odptload/internal/odpt"
	jsonparser "odptload/internal/parser/json"
	parquetparser "odptload/internal/parser/parquet"
	"odptload/internal/plan"
	"odptload/internal/sink"
	"odptload/internal/storage"
	"odptload/internal/transform"
	"odptload/pkg/records"
)

const thisMany = 3

// counters holds per-run statistics.
type counters struct {
	read        int64 // records read across all entity types
	filteredOut int64 // records dropped by the operator filter
	unmappable  int64 // records excluded by the transformer (bad same-as URI)
	rowsOut     int64 // destination rows produced
}

// Function variables used to introduce test seams. In production these point
// to real implementations; tests can override them.
var (
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return storage.New(ctx, cfg)
	}

	clockNowFn = time.Now
)

// run executes a full read → filter → transform → plan → deliver run.
//
// Each entity type is processed end-to-end before the next begins; the final
// load is one serial transaction (or one script). A missing per-entity-type
// input file is a warning, not a failure: that entity type contributes
// nothing this run. A present but unreadable input fails the run in apply
// mode and is skipped with a warning in script mode. Unmappable records are
// excluded, counted, and the first few examples logged.
func run(ctx context.Context, cfg config.Pipeline) error {
	fltr := odpt.Filter{Operator: cfg.Filter.Operator}

	var stats counters
	dropAgg := newErrAgg(thisMany)

	readFiltered := func(entity string) ([]records.Record, error) {
		start := clockNowFn()
		recs, err := readEntity(ctx, cfg, entity)
		metrics.RecordStep(cfg.Job, "read", err, clockNowFn().Sub(start))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Printf("reader: %s input not found, skipping entity type: %v", entity, err)
				return nil, nil
			}
			// A present-but-unreadable input must not reach the destination:
			// applying would truncate tables and reload nothing. Script mode
			// keeps producing the other entity types so the output stays
			// inspectable.
			if cfg.Output.Mode == config.ModeApply {
				return nil, fmt.Errorf("read %s: %w", entity, err)
			}
			log.Printf("reader: %s input unreadable, skipping entity type: %v", entity, err)
			return nil, nil
		}
		stats.read += int64(len(recs))

		kept := recs[:0:0]
		for _, rec := range recs {
			if fltr.Keep(rec) {
				kept = append(kept, rec)
			}
		}
		stats.filteredOut += int64(len(recs) - len(kept))
		log.Printf("reader: entity=%s read=%d kept=%d", entity, len(recs), len(kept))
		return kept, nil
	}

	onDrop := func(entity string) transform.DropFn {
		return func(i int, reason string) {
			dropAgg.add(fmt.Sprintf("%s[%d]: %s", entity, i, reason))
			stats.unmappable++
		}
	}

	// Transform each entity family; stations and bus stops union into the
	// stops table, stations first (concatenation order is insertion-stable
	// but not semantically significant).
	tStart := clockNowFn()
	railways, err := readFiltered(odpt.EntityRailway)
	if err != nil {
		return err
	}
	stations, err := readFiltered(odpt.EntityStation)
	if err != nil {
		return err
	}
	busstops, err := readFiltered(odpt.EntityBusstop)
	if err != nil {
		return err
	}
	routes := transform.Routes(railways, onDrop(odpt.EntityRailway))
	stops := transform.Stations(stations, onDrop(odpt.EntityStation))
	stops = append(stops, transform.Busstops(busstops, onDrop(odpt.EntityBusstop))...)
	metrics.RecordStep(cfg.Job, "transform", nil, clockNowFn().Sub(tStart))

	rowsByTable := map[string][][]any{
		"routes": rowValues(routes),
		"stops":  rowValues(stops),
	}
	stats.rowsOut = int64(len(routes) + len(stops))

	units, err := plan.Build(rowsByTable)
	if err != nil {
		return fmt.Errorf("plan load: %w", err)
	}

	if sum, err := sink.ScriptChecksum(units); err == nil {
		log.Printf("plan: units=%d checksum=%016x", len(units), sum)
	}

	dStart := clockNowFn()
	err = deliver(ctx, cfg, units)
	metrics.RecordStep(cfg.Job, "load", err, clockNowFn().Sub(dStart))
	if err != nil {
		return err
	}
	metrics.RecordTables(cfg.Job, int64(len(units)))

	logDropSummary(dropAgg)
	logGlobalSummary(cfg.Job, &stats)
	return nil
}

// readEntity loads one entity type's batch from the per-run source dir.
func readEntity(ctx context.Context, cfg config.Pipeline, entity string) ([]records.Record, error) {
	format := cfg.Source.Format
	if format == "" {
		format = "json"
	}
	path := filepath.Join(cfg.Source.Dir, entity+"."+format)

	switch format {
	case "parquet":
		return parquetparser.ReadFile(path)
	case "json":
		src, err := file.NewLocal(path).Open(ctx)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return jsonparser.DecodeAll(src)
	default:
		return nil, fmt.Errorf("unsupported source.format=%s", format)
	}
}

// deliver applies the planned units according to the configured output mode.
func deliver(ctx context.Context, cfg config.Pipeline, units []plan.LoadUnit) error {
	switch cfg.Output.Mode {
	case config.ModeScript:
		f, err := os.Create(cfg.Output.ScriptPath)
		if err != nil {
			return fmt.Errorf("create script: %w", err)
		}
		if err := sink.WriteScript(f, units, clockNowFn()); err != nil {
			f.Close()
			return fmt.Errorf("write script: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close script: %w", err)
		}
		log.Printf("sink: wrote %s", cfg.Output.ScriptPath)
		return nil

	case config.ModeApply:
		repo, err := newRepositoryFn(ctx, storage.Config{
			Kind: cfg.Storage.Kind,
			DSN:  cfg.Storage.DB.DSN,
		})
		if err != nil {
			return fmt.Errorf("init repo: %w", err)
		}
		defer repo.Close()

		if cfg.Storage.AutoCreateTable {
			if err := storage.EnsureTables(ctx, cfg.Storage.Kind, repo); err != nil {
				return fmt.Errorf("apply DDL: %w", err)
			}
		}
		if err := repo.ApplyUnits(ctx, units); err != nil {
			return fmt.Errorf("apply load: %w", err)
		}
		log.Printf("sink: applied %d units to %s", len(units), cfg.Storage.Kind)
		return nil

	default:
		return fmt.Errorf("unsupported output.mode=%s", cfg.Output.Mode)
	}
}

// rowValues converts typed destination rows into positional values.
func rowValues[T interface{ Values() []any }](rows []T) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = r.Values()
	}
	return out
}

// logDropSummary prints aggregated unmappable-record errors. Only the first N
// unique messages are shown.
func logDropSummary(agg *errAgg) {
	if agg.count == 0 {
		return
	}
	log.Printf("transform: unmappable records: %d (showing first %d)", agg.count, len(agg.first))
	for i, s := range agg.first {
		log.Printf("  #%03d: %s", i+1, s)
	}
}

// logGlobalSummary prints final aggregated statistics for the run.
//
// Invariant for records: read == rows_out + filtered_out + unmappable.
func logGlobalSummary(job string, c *counters) {
	log.Printf(
		"summary: read=%d filtered_out=%d unmappable=%d rows_out=%d",
		c.read, c.filteredOut, c.unmappable, c.rowsOut,
	)

	metrics.RecordRow(job, "read", c.read)
	metrics.RecordRow(job, "filtered_out", c.filteredOut)
	metrics.RecordRow(job, "unmappable", c.unmappable)
	metrics.RecordRow(job, "rows_out", c.rowsOut)

	if accounted := c.rowsOut + c.filteredOut + c.unmappable; accounted != c.read {
		log.Printf(
			"WARNING: record accounting mismatch: read=%d accounted=%d (delta=%d)",
			c.read, accounted, c.read-accounted,
		)
	}
}

// errAgg aggregates error messages, retaining the first few examples.
type errAgg struct {
	mu    sync.Mutex
	limit int
	count int
	first []string
}

func newErrAgg(limit int) *errAgg {
	return &errAgg{limit: limit}
}

func (a *errAgg) add(msg string) {
	a.mu.Lock()
	if a.count < a.limit {
		a.first = append(a.first, msg)
	}
	a.count++
	a.mu.Unlock()
}
