package plan

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildOrdersDependenciesFirst(t *testing.T) {
	t.Parallel()

	rows := map[string][][]any{
		"routes": {
			{"ChuoRapid", "OP_JR_EAST", "JC", "中央線快速", 2},
		},
		"stops": {
			{"Tokyo", "東京", 35.681, 139.767, 1},
			{"1234", "浅草", 35.711, 139.796, 0},
		},
	}

	units, err := Build(rows)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("Build() returned %d units, want 2", len(units))
	}
	if units[0].Table != "stops" || units[1].Table != "routes" {
		t.Fatalf("unit order = [%s %s], want [stops routes]", units[0].Table, units[1].Table)
	}
	if len(units[0].Rows) != 2 || len(units[1].Rows) != 1 {
		t.Fatalf("row counts = [%d %d], want [2 1]", len(units[0].Rows), len(units[1].Rows))
	}
	wantCols := []string{"id", "name", "latitude", "longitude", "location_type"}
	if !reflect.DeepEqual(units[0].Columns, wantCols) {
		t.Fatalf("stops columns = %v, want %v", units[0].Columns, wantCols)
	}
}

func TestBuildEmitsEmptyUnits(t *testing.T) {
	t.Parallel()

	// A table with no rows still gets a unit: the run truncates it so stale
	// contents from a previous load cannot survive.
	units, err := Build(map[string][][]any{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("Build() returned %d units, want one per declared table", len(units))
	}
	for _, u := range units {
		if len(u.Rows) != 0 {
			t.Fatalf("unit %s has %d rows, want 0", u.Table, len(u.Rows))
		}
	}
}

func TestBuildRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := Build(map[string][][]any{
		"stops": {
			{"Tokyo", "東京", 35.681, 139.767, 1},
			{"Tokyo", "とうきょう", 35.682, 139.768, 0},
		},
	})
	if err == nil {
		t.Fatal("Build() error = nil, want duplicate id error")
	}
	if !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("Build() error = %v, want mention of duplicate id", err)
	}
}

func TestBuildRejectsRowWidthMismatch(t *testing.T) {
	t.Parallel()

	_, err := Build(map[string][][]any{
		"routes": {
			{"ChuoRapid", "OP_JR_EAST"},
		},
	})
	if err == nil {
		t.Fatal("Build() error = nil, want row width error")
	}
}
