package engine

import (
	models "school-dashboard/app/models/dashboard"
)

// NAMarker is the selection value that lets records with an empty field
// through a filter.
const NAMarker = "N/A"

// DistinctValues returns the non-empty values of field in first-occurrence
// order, without duplicates.
func DistinctValues(records []models.Record, field string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)

	for _, r := range records {
		v := r.Value(field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}
