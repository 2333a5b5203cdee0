// Package sink applies planned load units to the destination: either
// directly, as one transaction through a storage.Repository, or serialized as
// a portable SQL statement script for audit/replay.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"odptload/internal/plan"
)

// WriteScript serializes the ordered load units as a single SQL script:
// a timestamp header comment, then one transaction containing, per table, a
// TRUNCATE followed by one INSERT per row. Re-running the pipeline on
// identical input with the same timestamp yields a byte-identical script.
//
// The script is a generated artifact applied by a trusted, non-interactive
// pipeline. Values are rendered with plain single-quote escaping rather than
// parameterization; the direct-apply path never uses this rendering.
func WriteScript(w io.Writer, units []plan.LoadUnit, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "-- Data generated on: %s\n\n", now.Format(time.RFC3339))
	fmt.Fprintf(bw, "BEGIN;\n\n")
	for _, u := range units {
		fmt.Fprintf(bw, "TRUNCATE TABLE public.%q RESTART IDENTITY CASCADE;\n", u.Table)
		for _, row := range u.Rows {
			vals := make([]string, len(row))
			for i, v := range row {
				vals[i] = literal(v)
			}
			fmt.Fprintf(bw, "INSERT INTO %s VALUES (%s);\n", u.Table, strings.Join(vals, ", "))
		}
	}
	fmt.Fprintf(bw, "\nCOMMIT;\n")

	return bw.Flush()
}

// ScriptChecksum renders the script with a fixed timestamp and returns an
// xxh3 digest of its body. Two runs over identical input produce the same
// checksum, which the CLI logs so operators can verify idempotence across
// re-runs without diffing table contents.
func ScriptChecksum(units []plan.LoadUnit) (uint64, error) {
	var sb strings.Builder
	if err := WriteScript(&sb, units, time.Unix(0, 0).UTC()); err != nil {
		return 0, err
	}
	return xxh3.HashString(sb.String()), nil
}

// literal renders one value as a SQL literal. Strings are single-quote
// escaped; numeric and boolean values stay unquoted; nil becomes NULL.
func literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	default:
		// Unexpected types render as escaped strings rather than failing the
		// whole script.
		return "'" + strings.ReplaceAll(fmt.Sprint(t), "'", "''") + "'"
	}
}
