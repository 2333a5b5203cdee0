package schema

import "fmt"

// Column describes one destination column with a loose logical type that the
// per-backend DDL generators map onto concrete SQL types.
type Column struct {
	Name string
	Type string // "text", "double", "int"
}

// Table declares one destination table: its column order (which every
// produced row must match) and the tables it depends on via foreign keys.
// Load order is always computed from DependsOn, never hard-coded, so adding a
// table cannot silently violate foreign-key load order.
type Table struct {
	Name      string
	Columns   []Column
	DependsOn []string
}

// ColumnNames returns the declared column names in order.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Tables is the full destination schema. routes declares a dependency on
// stops so that stops is truncated and reloaded first within the load
// transaction.
var Tables = []Table{
	{
		Name: "routes",
		Columns: []Column{
			{Name: "id", Type: "text"},
			{Name: "operator_id", Type: "text"},
			{Name: "route_short_name", Type: "text"},
			{Name: "route_long_name", Type: "text"},
			{Name: "route_type", Type: "int"},
		},
		DependsOn: []string{"stops"},
	},
	{
		Name: "stops",
		Columns: []Column{
			{Name: "id", Type: "text"},
			{Name: "name", Type: "text"},
			{Name: "latitude", Type: "double"},
			{Name: "longitude", Type: "double"},
			{Name: "location_type", Type: "int"},
		},
	},
}

// TableByName looks a table up in Tables.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// TopoOrder orders tables so that every table appears after all tables it
// depends on (Kahn's algorithm). The input order is preserved among tables
// with no ordering constraint, keeping output deterministic. An unknown
// dependency or a dependency cycle is a schema declaration bug and returns an
// error rather than a partial order.
func TopoOrder(tables []Table) ([]Table, error) {
	byName := make(map[string]Table, len(tables))
	indeg := make(map[string]int, len(tables))
	dependents := make(map[string][]string, len(tables))

	for _, t := range tables {
		if _, dup := byName[t.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate table %q", t.Name)
		}
		byName[t.Name] = t
		indeg[t.Name] = 0
	}
	for _, t := range tables {
		for _, dep := range t.DependsOn {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("schema: table %q depends on unknown table %q", t.Name, dep)
			}
			indeg[t.Name]++
			dependents[dep] = append(dependents[dep], t.Name)
		}
	}

	// Seed the queue in declaration order for determinism.
	var queue []string
	for _, t := range tables {
		if indeg[t.Name] == 0 {
			queue = append(queue, t.Name)
		}
	}

	out := make([]Table, 0, len(tables))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		out = append(out, byName[name])
		for _, dep := range dependents[name] {
			indeg[dep]--
			if indeg[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if len(out) != len(tables) {
		return nil, fmt.Errorf("schema: dependency cycle among tables")
	}
	return out, nil
}
