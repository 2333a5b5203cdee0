// Package plan turns the transformed row sets into an ordered sequence of
// per-table load units. One unit is a truncate-then-insert work item for a
// single destination table; the full ordered sequence is applied inside one
// transaction by the sink.
package plan

import (
	"fmt"

	"odptload/internal/schema"
)

// LoadUnit is one destination table's truncate-then-insert work item. Rows
// are aligned with Columns; an empty Rows slice still truncates the table, so
// that re-running on shrunken input fully replaces previous contents.
type LoadUnit struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Build produces load units for every declared destination table, ordered by
// the computed foreign-key dependency order (dependencies first). Tables
// absent from rowsByTable still produce an empty unit: truncation is
// unconditional per run to guarantee idempotent replacement semantics.
//
// Build also enforces id uniqueness per table (the first column). Two source
// records collapsing to the same id would violate a uniqueness constraint
// only once the load reaches the database; failing here keeps the error close
// to the data that caused it.
func Build(rowsByTable map[string][][]any) ([]LoadUnit, error) {
	ordered, err := schema.TopoOrder(schema.Tables)
	if err != nil {
		return nil, err
	}

	units := make([]LoadUnit, 0, len(ordered))
	for _, t := range ordered {
		rows := rowsByTable[t.Name]
		for _, row := range rows {
			if len(row) != len(t.Columns) {
				return nil, fmt.Errorf("plan: table %s: row has %d values, want %d", t.Name, len(row), len(t.Columns))
			}
		}
		if err := checkIDs(t.Name, rows); err != nil {
			return nil, err
		}
		units = append(units, LoadUnit{
			Table:   t.Name,
			Columns: t.ColumnNames(),
			Rows:    rows,
		})
	}
	return units, nil
}

// checkIDs verifies that the first column is unique across the unit's rows.
func checkIDs(table string, rows [][]any) error {
	seen := make(map[any]struct{}, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		id := row[0]
		if _, dup := seen[id]; dup {
			return fmt.Errorf("plan: table %s: duplicate id %v; source records collapse to the same identifier", table, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
