// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline. Path is a
// dotted path into the config (e.g. "storage.db.dsn").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateFilter(p.Filter)...)
	issues = append(issues, validateOutput(p)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
		return issues
	}
	if s.Kind != "file" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}
	if s.Kind == "file" && strings.TrimSpace(s.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.dir",
			Message:  "file source requires a non-empty dir",
		})
	}

	switch s.Format {
	case "json", "parquet":
	case "":
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.format",
			Message:  `source.format is empty; defaulting to "json"`,
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.format",
			Message:  fmt.Sprintf(`unsupported format %q (want "json" or "parquet")`, s.Format),
		})
	}

	return issues
}

func validateFilter(f Filter) []Issue {
	if strings.TrimSpace(f.Operator) == "" {
		return []Issue{{
			Severity: SeverityWarning,
			Path:     "filter.operator",
			Message:  "filter.operator is empty; records of every operator will be loaded",
		}}
	}
	return nil
}

func validateOutput(p Pipeline) []Issue {
	var issues []Issue

	switch p.Output.Mode {
	case ModeApply:
		// Direct apply needs a reachable destination; fail fast before any
		// transformation work begins.
		if strings.TrimSpace(p.Storage.Kind) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.kind",
				Message:  "apply mode requires storage.kind",
			})
		}
		if strings.TrimSpace(p.Storage.DB.DSN) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.db.dsn",
				Message:  fmt.Sprintf("apply mode requires a connection string (storage.db.dsn or %s)", EnvDSN),
			})
		}

	case ModeScript:
		if strings.TrimSpace(p.Output.ScriptPath) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "output.script_path",
				Message:  "script mode requires output.script_path",
			})
		}

	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.mode",
			Message:  `output.mode must be "apply" or "script"`,
		})

	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.mode",
			Message:  fmt.Sprintf(`unknown output mode %q (want "apply" or "script")`, p.Output.Mode),
		})
	}

	return issues
}
