// Package filter derives the visible record subset from full state plus a
// selection. Everything here is pure: no input is mutated and equal
// inputs always produce identical, order-preserving output.
package filter

import (
	"strings"

	"taxdesk/internal/models"
)

// Visible returns the records whose country matches the selection. An
// empty selection means no filter; all records pass in their original
// order. Matching is by category display name, not id: a record whose
// countryId is mid-optimistic-update may transiently fail to match. That
// is an accepted consequence of the denormalized country/countryId pair.
func Visible(records []models.Record, categories []models.Category, selected map[string]bool) []models.Record {
	out := make([]models.Record, 0, len(records))
	if len(selected) == 0 {
		out = append(out, records...)
		return out
	}

	allowedNames := make(map[string]bool, len(selected))
	for _, c := range categories {
		if selected[c.ID] {
			allowedNames[c.Name] = true
		}
	}

	for _, r := range records {
		if allowedNames[r.Country] {
			out = append(out, r)
		}
	}
	return out
}

// MatchName narrows records to those whose name contains query,
// case-insensitively. An empty or blank query passes everything through.
func MatchName(records []models.Record, query string) []models.Record {
	query = strings.TrimSpace(strings.ToLower(query))
	out := make([]models.Record, 0, len(records))
	if query == "" {
		out = append(out, records...)
		return out
	}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), query) {
			out = append(out, r)
		}
	}
	return out
}
