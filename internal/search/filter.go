// Package search implements the free-text vehicle filter: a query is
// split into whitespace tokens and a vehicle matches when every token
// appears, case-insensitively, somewhere in its searchable fields.
package search

import (
	"strings"

	"github.com/driveloop/vehicle-rental/internal/model"
)

// Matches reports whether every whitespace-delimited token of query
// is a substring of text, case-folded.  There is no phrase matching
// and no ranking.  An empty or whitespace-only query matches
// everything.
func Matches(text, query string) bool {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return true
	}
	hay := strings.ToLower(text)
	for _, tok := range tokens {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}

// VehicleText concatenates the searchable fields of a vehicle in the
// order the query is matched against: name, brand, model, location.
func VehicleText(v model.Vehicle) string {
	return v.Name + " " + v.Brand + " " + v.Model + " " + v.Location
}

// Vehicles returns the subset of list matching query, preserving
// input order.  An empty query is the identity projection and
// returns list unchanged.
func Vehicles(list []model.Vehicle, query string) []model.Vehicle {
	if strings.TrimSpace(query) == "" {
		return list
	}
	out := make([]model.Vehicle, 0, len(list))
	for _, v := range list {
		if Matches(VehicleText(v), query) {
			out = append(out, v)
		}
	}
	return out
}
