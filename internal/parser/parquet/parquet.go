// Package parquet reads and writes the columnar per-entity-type batches the
// fetch step persists alongside raw JSON. Files are flat: one optional column
// per namespaced source property, plus a loaded_at timestamp column appended
// at ingestion time.
package parquet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/parquet-go/parquet-go"

	"odptload/pkg/records"
)

// LoadedAtColumn is appended to every written file and ignored by the
// transform stage.
const LoadedAtColumn = "loaded_at"

// ReadFile decodes all rows of a Parquet file into records. Column names are
// preserved verbatim (including namespace separators such as "owl:sameAs").
func ReadFile(path string) ([]records.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("parquet: stat %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("parquet: open %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	names := make([]string, len(fields))
	for i, fld := range fields {
		names[i] = fld.Name()
	}

	var out []records.Record
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		buf := make([]parquet.Row, 256)
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rec := make(records.Record, len(row))
				for _, v := range row {
					ci := v.Column()
					if ci < 0 || ci >= len(names) || v.IsNull() {
						continue
					}
					rec[names[ci]] = goValue(v)
				}
				out = append(out, rec)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("parquet: read %s: %w", path, err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("parquet: close row group: %w", err)
		}
	}
	return out, nil
}

// WriteFile persists records as a flat Parquet file. Every observed property
// becomes an optional string column; loadedAtMillis is written into the
// loaded_at timestamp column of every row.
func WriteFile(path string, recs []records.Record, loadedAtMillis int64) error {
	keys := map[string]struct{}{}
	for _, rec := range recs {
		for k := range rec {
			keys[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	group := parquet.Group{}
	for _, name := range names {
		group[name] = parquet.Optional(parquet.String())
	}
	group[LoadedAtColumn] = parquet.Timestamp(parquet.Millisecond)
	sch := parquet.NewSchema("records", group)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := parquet.NewGenericWriter[map[string]any](f, sch)

	rows := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		row := make(map[string]any, len(rec)+1)
		for k, v := range rec {
			if s := stringValue(v); s != "" {
				row[k] = s
			}
		}
		row[LoadedAtColumn] = loadedAtMillis
		rows = append(rows, row)
	}
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("parquet: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("parquet: close %s: %w", path, err)
	}
	return f.Close()
}

// goValue maps a parquet leaf value onto the loose scalar types records use.
func goValue(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

// stringValue renders a decoded JSON value as a cell. Lists (e.g. multi-
// valued operator references) are re-encoded as JSON so records.Strings can
// recover the elements after the round trip; scalar values render plainly.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any, []string, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
