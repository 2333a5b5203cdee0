// Package records defines the generic record type flowing through the
// pipeline: one source entity decoded into a flat map keyed by its namespaced
// property names (e.g. "owl:sameAs", "odpt:operator", "geo:lat").
//
// Values come straight from the JSON or Parquet reader and are intentionally
// loosely typed; the typed accessors below perform the minimal coercion the
// transform stage needs without ever panicking on unexpected shapes.
package records

import (
	"encoding/json"
	"strconv"
)

// Record is one source entity. Keys are namespaced property names.
type Record map[string]any

// String returns the string value for key, or "" when the key is absent or
// not a string.
func (r Record) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Float returns the float64 value for key. JSON numbers may arrive as
// float64 or json.Number (UseNumber decoding); Parquet values may arrive as
// int64 or float64. Returns (0, false) for anything else.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Strings normalizes a value that the source encodes inconsistently as either
// a single string or a list of strings. The result is always a slice:
//
//   - key absent or nil  -> nil
//   - "x"                -> ["x"]
//   - ["x","y"]          -> ["x","y"]
//
// Non-string list elements are skipped; any other value shape yields nil so
// callers never branch on the source shape again.
func (r Record) Strings(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		// Columnar round trips flatten lists into their JSON encoding.
		if len(t) > 0 && t[0] == '[' {
			var list []string
			if err := json.Unmarshal([]byte(t), &list); err == nil {
				return list
			}
		}
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}
