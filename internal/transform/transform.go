package transform

import (
	"golang.org/x/text/unicode/norm"

	"odptload/internal/odpt"
	"odptload/internal/schema"
	"odptload/pkg/records"
)

// DropFn receives the index of an unmappable record and the reason it was
// excluded. Callers typically count drops and log the first few examples.
type DropFn func(i int, reason string)

// Routes maps railway records onto routes rows. Records whose same-as URI
// cannot be reduced to an id are excluded and reported via onDrop.
//
// RouteType is fixed to 2 (rail): bus routes are not mapped into this table.
func Routes(recs []records.Record, onDrop DropFn) []schema.Route {
	out := make([]schema.Route, 0, len(recs))
	for i, rec := range recs {
		id, err := ExtractID(rec.String(odpt.KeySameAs))
		if err != nil {
			drop(onDrop, i, err.Error())
			continue
		}
		out = append(out, schema.Route{
			ID:             id,
			OperatorID:     ClassifyOperator(rec.Strings(odpt.KeyOperator)),
			RouteShortName: rec.String(odpt.KeyLineCode),
			RouteLongName:  title(rec, odpt.KeyRailwayTitle),
			RouteType:      2,
		})
	}
	return out
}

// Stations maps rail station records onto stops rows with location_type 1.
func Stations(recs []records.Record, onDrop DropFn) []schema.Stop {
	return stops(recs, odpt.KeyStationTitle, schema.LocationStation, onDrop)
}

// Busstops maps bus stop pole records onto stops rows with location_type 0.
// The projection is structurally the same as Stations apart from the title
// field and the discriminator; both outputs are concatenated by the caller
// into the unioned stops table.
func Busstops(recs []records.Record, onDrop DropFn) []schema.Stop {
	return stops(recs, odpt.KeyBusstopTitle, schema.LocationBusstop, onDrop)
}

func stops(recs []records.Record, titleKey string, locationType int, onDrop DropFn) []schema.Stop {
	out := make([]schema.Stop, 0, len(recs))
	for i, rec := range recs {
		id, err := ExtractID(rec.String(odpt.KeySameAs))
		if err != nil {
			drop(onDrop, i, err.Error())
			continue
		}
		lat, _ := rec.Float(odpt.KeyLat)
		lon, _ := rec.Float(odpt.KeyLon)
		out = append(out, schema.Stop{
			ID:           id,
			Name:         title(rec, titleKey),
			Latitude:     lat,
			Longitude:    lon,
			LocationType: locationType,
		})
	}
	return out
}

// title reads a display-name field and NFC-normalizes it. Source titles are
// Japanese text that arrives in mixed normalization forms depending on the
// publishing operator.
func title(rec records.Record, key string) string {
	return norm.NFC.String(rec.String(key))
}

func drop(onDrop DropFn, i int, reason string) {
	if onDrop != nil {
		onDrop(i, reason)
	}
}
