package odpt

import (
	"strings"

	"odptload/pkg/records"
)

// Filter decides which source records belong to the deployment's target
// operator. The source encodes the operator reference inconsistently across
// entity families: absent (e.g. calendars), a single URI string, or a list of
// URI strings. Records.Strings normalizes the tri-state to a slice before
// comparison.
//
// Policy:
//   - operator field absent      -> retain (the entity type has no operator concept)
//   - single value               -> retain iff it contains the token
//   - list                       -> retain iff at least one element contains the token
//   - malformed / unknown shape  -> retain (fail open rather than silently drop)
type Filter struct {
	// Operator is the target-operator token matched by substring
	// containment, e.g. "Toei" or "odpt.Operator:JR-East".
	Operator string
}

// Keep reports whether rec should be retained. It is a pure predicate and
// never fails.
func (f Filter) Keep(rec records.Record) bool {
	if f.Operator == "" {
		return true
	}
	if !rec.Has(KeyOperator) {
		return true
	}
	ops := rec.Strings(KeyOperator)
	if len(ops) == 0 {
		// Present but of a shape we cannot read: fail open.
		return true
	}
	for _, op := range ops {
		if strings.Contains(op, f.Operator) {
			return true
		}
	}
	return false
}
