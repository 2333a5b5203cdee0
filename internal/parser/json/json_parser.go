// Package json decodes ODPT API documents into records.Record batches.
//
// The API returns one top-level JSON array of flat objects per entity type.
// NDJSON (one object per line) is also accepted, since intermediate tooling
// sometimes re-serializes the payload that way.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"odptload/pkg/records"
)

// Decoder wraps encoding/json.Decoder with a record-oriented API.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder constructs a Decoder from an io.Reader. UseNumber is enabled so
// downstream code decides how to map numeric values.
func NewDecoder(r io.Reader) *Decoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return &Decoder{dec: d}
}

// Next reads the next top-level JSON object and converts it into a
// records.Record. Non-object top-level values are skipped. io.EOF is returned
// when the stream is exhausted.
func (d *Decoder) Next() (records.Record, error) {
	for {
		var raw any
		if err := d.dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("json parser: decode: %w", err)
		}
		if m, ok := raw.(map[string]any); ok {
			return records.Record(m), nil
		}
	}
}

// DecodeAll reads the full document from r and returns its records.
//
// A top-level array of objects (the ODPT API shape) is expanded; a top-level
// object is treated as a single record, with any trailing NDJSON objects
// appended.
func DecodeAll(r io.Reader) ([]records.Record, error) {
	d := json.NewDecoder(r)
	d.UseNumber()

	var root any
	if err := d.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("json parser: decode root: %w", err)
	}

	var out []records.Record
	switch v := root.(type) {
	case []any:
		out = make([]records.Record, 0, len(v))
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("json parser: element %d in array is not an object", i)
			}
			out = append(out, records.Record(obj))
		}
	case map[string]any:
		out = append(out, records.Record(v))
	default:
		return nil, fmt.Errorf("json parser: unsupported top-level JSON type %T", v)
	}

	// Consume any trailing NDJSON content after the root value.
	dec := NewDecoder(io.MultiReader(d.Buffered(), r))
	for {
		rec, err := dec.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		out = append(out, rec)
	}

	return out, nil
}
