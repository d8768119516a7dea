package view

import "github.com/rshade/roster/internal/roster"

// FilterByJobTitle returns the records whose job title equals title exactly.
// Matching is case-sensitive and keeps input order. An empty title means no
// filter and returns records unchanged. A title matching nothing returns an
// empty, non-nil slice.
func FilterByJobTitle(records []roster.Record, title roster.JobTitle) []roster.Record {
	if title == "" {
		return records
	}

	filtered := make([]roster.Record, 0, len(records))
	for _, r := range records {
		if r.JobTitle == title {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
