package sink

import (
	"strings"
	"testing"
	"time"

	"odptload/internal/plan"
)

func sampleUnits() []plan.LoadUnit {
	return []plan.LoadUnit{
		{
			Table:   "stops",
			Columns: []string{"id", "name", "latitude", "longitude", "location_type"},
			Rows: [][]any{
				{"Tokyo", "東京", 35.681, 139.767, 1},
				{"1234", "O'Hare", 35.711, 139.796, 0},
			},
		},
		{
			Table:   "routes",
			Columns: []string{"id", "operator_id", "route_short_name", "route_long_name", "route_type"},
			Rows: [][]any{
				{"ChuoRapid", "OP_JR_EAST", "JC", "中央線快速", 2},
			},
		},
	}
}

func TestWriteScript(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	var sb strings.Builder
	if err := WriteScript(&sb, sampleUnits(), ts); err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}
	got := sb.String()

	want := `-- Data generated on: 2024-03-15T12:00:00Z

BEGIN;

TRUNCATE TABLE public."stops" RESTART IDENTITY CASCADE;
INSERT INTO stops VALUES ('Tokyo', '東京', 35.681, 139.767, 1);
INSERT INTO stops VALUES ('1234', 'O''Hare', 35.711, 139.796, 0);
TRUNCATE TABLE public."routes" RESTART IDENTITY CASCADE;
INSERT INTO routes VALUES ('ChuoRapid', 'OP_JR_EAST', 'JC', '中央線快速', 2);

COMMIT;
`
	if got != want {
		t.Fatalf("script mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteScriptEmptyUnitStillTruncates(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := WriteScript(&sb, []plan.LoadUnit{{Table: "stops"}}, time.Unix(0, 0).UTC())
	if err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}
	got := sb.String()
	if !strings.Contains(got, `TRUNCATE TABLE public."stops" RESTART IDENTITY CASCADE;`) {
		t.Fatalf("script missing truncate for empty unit:\n%s", got)
	}
	if strings.Contains(got, "INSERT") {
		t.Fatalf("script has inserts for empty unit:\n%s", got)
	}
}

func TestWriteScriptDeterministic(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	var a, b strings.Builder
	if err := WriteScript(&a, sampleUnits(), ts); err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}
	if err := WriteScript(&b, sampleUnits(), ts); err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}
	if a.String() != b.String() {
		t.Fatal("two renderings of the same units differ")
	}
}

func TestScriptChecksum(t *testing.T) {
	t.Parallel()

	c1, err := ScriptChecksum(sampleUnits())
	if err != nil {
		t.Fatalf("ScriptChecksum() error = %v", err)
	}
	c2, err := ScriptChecksum(sampleUnits())
	if err != nil {
		t.Fatalf("ScriptChecksum() error = %v", err)
	}
	if c1 != c2 {
		t.Fatalf("checksums differ across identical input: %016x vs %016x", c1, c2)
	}

	changed := sampleUnits()
	changed[0].Rows[0][1] = "different"
	c3, err := ScriptChecksum(changed)
	if err != nil {
		t.Fatalf("ScriptChecksum() error = %v", err)
	}
	if c3 == c1 {
		t.Fatal("checksum unchanged after row edit")
	}
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: "NULL"},
		{name: "string", in: "Tokyo", want: "'Tokyo'"},
		{name: "quote escaped", in: "O'Hare", want: "'O''Hare'"},
		{name: "true", in: true, want: "TRUE"},
		{name: "false", in: false, want: "FALSE"},
		{name: "int", in: 2, want: "2"},
		{name: "int64", in: int64(-7), want: "-7"},
		{name: "float64", in: 35.681, want: "35.681"},
		{name: "float64 integral", in: 2.0, want: "2"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := literal(tt.in); got != tt.want {
				t.Fatalf("literal(%#v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
