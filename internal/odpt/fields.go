// Package odpt holds the vocabulary of the ODPT (Open Data for Public
// Transportation) linked-data source: the namespaced property keys records
// carry and the operator filtering policy applied before transformation.
package odpt

// Property keys as they appear in the source JSON/Parquet documents.
const (
	KeySameAs       = "owl:sameAs"
	KeyOperator     = "odpt:operator"
	KeyLineCode     = "odpt:lineCode"
	KeyRailwayTitle = "odpt:railwayTitle"
	KeyStationTitle = "odpt:stationTitle"
	KeyBusstopTitle = "odpt:busstopPoleTitle"
	KeyLat          = "geo:lat"
	KeyLon          = "geo:lon"
)

// Entity type names, matching both the API endpoint suffixes and the
// per-run input file basenames (<type>.json / <type>.parquet).
const (
	EntityRailway = "railway"
	EntityStation = "station"
	EntityBusstop = "stops"
)
