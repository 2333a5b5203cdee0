// Package config defines the canonical, JSON-serializable configuration model
// for the transit load pipeline. It is intentionally small, explicit, and
// dependency-free so that run configurations can be loaded from disk and
// passed through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the JSON structure used in run files
//     under configs/*.json.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library.
//
// Example:
//
//	{
//	  "job":    "odpt_load",
//	  "source": { "kind": "file", "dir": "output", "format": "json" },
//	  "filter": { "operator": "Toei" },
//	  "storage": { "kind": "postgres", "db": { "dsn": "postgresql://..." },
//	               "auto_create_table": true },
//	  "output": { "mode": "apply", "script_path": "data_insert.sql" }
//	}
package config

import (
	"encoding/json"
	"io"
	"os"
)

// Pipeline describes one full run: where the retrieved per-entity-type
// batches live, which operator to keep, and where the load goes.
type Pipeline struct {
	// Job identifies the run for logs and metrics labeling.
	Job string `json:"job"`

	Source  Source  `json:"source"`
	Filter  Filter  `json:"filter"`
	Storage Storage `json:"storage"`
	Output  Output  `json:"output"`
}

// Source identifies where the already-retrieved input batches are read from.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// Dir is the per-run directory holding one <entity>.<format> file per
	// source entity type. A missing file is a warning, not a failure: that
	// entity type contributes nothing to the run.
	Dir string `json:"dir"`

	// Format selects the batch file format: "json" (the raw API payload) or
	// "parquet" (the columnar form written at ingestion time).
	Format string `json:"format"`
}

// Filter configures the operator retention policy.
type Filter struct {
	// Operator is the target-operator token matched by substring containment
	// against each record's operator reference(s). Empty keeps everything.
	Operator string `json:"operator"`
}

// Storage configures the destination store for direct-apply mode.
type Storage struct {
	// Kind selects the storage backend ("postgres", "sqlite").
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`

	// AutoCreateTable creates the destination tables before loading.
	AutoCreateTable bool `json:"auto_create_table"`
}

// DBConfig carries the connection settings for the selected backend.
type DBConfig struct {
	// DSN is the backend connection string. The ODPT_DB_DSN environment
	// variable overrides it so credentials can stay out of run files.
	DSN string `json:"dsn"`
}

// Output selects the delivery mode.
type Output struct {
	// Mode is "apply" (one transaction against the destination store) or
	// "script" (serialize the load as a portable SQL statement script).
	Mode string `json:"mode"`

	// ScriptPath is where script mode writes its artifact.
	ScriptPath string `json:"script_path"`
}

// Delivery modes.
const (
	ModeApply  = "apply"
	ModeScript = "script"
)

// EnvDSN names the environment variable that overrides storage.db.dsn.
const EnvDSN = "ODPT_DB_DSN"

// Load decodes a Pipeline from r and resolves environment overrides.
func Load(r io.Reader) (Pipeline, error) {
	var p Pipeline
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Pipeline{}, err
	}
	if dsn := os.Getenv(EnvDSN); dsn != "" {
		p.Storage.DB.DSN = dsn
	}
	return p, nil
}
