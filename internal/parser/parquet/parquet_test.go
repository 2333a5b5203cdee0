package parquet

import (
	"path/filepath"
	"testing"

	"odptload/pkg/records"
)

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	in := []records.Record{
		{
			"owl:sameAs":    "odpt.Railway:JR-East.ChuoRapid",
			"odpt:operator": []any{"odpt.Operator:JR-East"},
			"odpt:lineCode": "JC",
		},
		{
			"owl:sameAs": "odpt.Railway:Toei.Asakusa",
			"geo:lat":    "35.711",
		},
	}

	path := filepath.Join(t.TempDir(), "railway.parquet")
	if err := WriteFile(path, in, 1700000000000); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("ReadFile() returned %d records, want 2", len(out))
	}

	if got := out[0].String("owl:sameAs"); got != "odpt.Railway:JR-East.ChuoRapid" {
		t.Fatalf("record[0] owl:sameAs = %q", got)
	}
	if got := out[0].String("odpt:lineCode"); got != "JC" {
		t.Fatalf("record[0] odpt:lineCode = %q", got)
	}

	// Multi-valued fields survive the columnar round trip via Strings.
	ops := out[0].Strings("odpt:operator")
	if len(ops) != 1 || ops[0] != "odpt.Operator:JR-East" {
		t.Fatalf("record[0] operator after round trip = %v", ops)
	}

	// Numeric strings remain readable as floats.
	if lat, ok := out[1].Float("geo:lat"); !ok || lat != 35.711 {
		t.Fatalf("record[1] geo:lat = (%v, %v)", lat, ok)
	}

	// The ingestion timestamp column is present on every row.
	for i, rec := range out {
		if !rec.Has(LoadedAtColumn) {
			t.Fatalf("record[%d] missing %s column", i, LoadedAtColumn)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.parquet")); err == nil {
		t.Fatal("ReadFile() error = nil for missing file")
	}
}

func TestWriteFileEmptyBatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteFile(path, nil, 0); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("ReadFile() returned %d records, want 0", len(out))
	}
}
