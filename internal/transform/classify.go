package transform

import "strings"

// Destination operator identifiers.
const (
	OpJREast = "OP_JR_EAST"
	OpToei   = "OP_TOEI"
	OpOther  = "OP_OTHER"
)

// operatorRule maps an uncontrolled source operator string onto a destination
// operator id when the token matches (case-insensitive substring).
type operatorRule struct {
	token string
	id    string
}

// operatorRules is an ordered, first-match-wins rule list. Source operator
// references are free-form URI-like strings, not keys, so substring rules are
// used instead of a lookup table. The list is deliberately incomplete:
// anything unmatched classifies as OP_OTHER.
var operatorRules = []operatorRule{
	{token: "jr", id: OpJREast},
	{token: "toei", id: OpToei},
}

// ClassifyOperator maps the record's operator string(s) onto a destination
// operator id. The first rule matching any of the given strings wins; rules
// are tried in order so that more specific tokens can be added ahead of
// general ones.
func ClassifyOperator(operators []string) string {
	for _, rule := range operatorRules {
		for _, op := range operators {
			if strings.Contains(strings.ToLower(op), rule.token) {
				return rule.id
			}
		}
	}
	return OpOther
}
