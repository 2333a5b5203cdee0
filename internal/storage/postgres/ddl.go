package postgres

import (
	"fmt"
	"strings"

	"odptload/internal/schema"
)

// mapType normalizes a logical column type onto a Postgres SQL type.
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "BIGINT"
	case "double", "float", "real":
		return "DOUBLE PRECISION"
	case "bool", "boolean":
		return "BOOLEAN"
	case "timestamp", "timestamptz":
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for the
// given table definition. The first column is the primary key.
func BuildCreateTableSQL(schemaName string, t schema.Table) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s %s", pgIdent(c.Name), mapType(c.Type))
		if i == 0 {
			cols[i] += " PRIMARY KEY"
		}
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s.%s (%s)",
		pgIdent(schemaName), pgIdent(t.Name), strings.Join(cols, ", "),
	)
}
