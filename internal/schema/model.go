package schema

// Route is one row of the destination "routes" table. Only rail routes are
// produced at the moment; RouteType is fixed to 2 (rail) because the railway
// entity family is the only one mapped into this table.
type Route struct {
	ID             string `db:"id"`
	OperatorID     string `db:"operator_id"`
	RouteShortName string `db:"route_short_name"`
	RouteLongName  string `db:"route_long_name"`
	RouteType      int    `db:"route_type"`
}

// Values returns the row in routes column order.
func (r Route) Values() []any {
	return []any{r.ID, r.OperatorID, r.RouteShortName, r.RouteLongName, r.RouteType}
}

// Stop is one row of the destination "stops" table. It is the union of two
// source entity families distinguished by LocationType: 1 = rail station,
// 0 = bus stop pole.
type Stop struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Latitude     float64 `db:"latitude"`
	Longitude    float64 `db:"longitude"`
	LocationType int     `db:"location_type"`
}

// Values returns the row in stops column order.
func (s Stop) Values() []any {
	return []any{s.ID, s.Name, s.Latitude, s.Longitude, s.LocationType}
}

// LocationType discriminator values for the stops union.
const (
	LocationStation = 1
	LocationBusstop = 0
)
