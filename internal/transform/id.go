// Package transform maps filtered ODPT source records onto destination rows:
// railway records onto routes, station and bus-stop-pole records onto the
// unioned stops table. All functions here are pure; rejected rows are
// reported through a drop callback and excluded from output.
package transform

import (
	"fmt"
	"strings"
)

// ExtractID derives the local destination id from a linked-data owl:sameAs
// URI by taking the substring after the final '.', e.g.
// "odpt.Railway:JR-East.ChuoRapid" -> "ChuoRapid".
//
// A URI with no '.' separator (or nothing after it) cannot be mapped and
// returns an error; callers exclude the row and count it.
func ExtractID(sameAs string) (string, error) {
	i := strings.LastIndexByte(sameAs, '.')
	if i < 0 {
		return "", fmt.Errorf("same-as URI %q has no '.' separator", sameAs)
	}
	id := sameAs[i+1:]
	if id == "" {
		return "", fmt.Errorf("same-as URI %q has empty trailing segment", sameAs)
	}
	return id, nil
}
