package view

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/roster/internal/roster"
)

// SortKey selects how the roster is ordered.
type SortKey int

const (
	// SortUnspecified orders by ascending ID. It is the default and reset state.
	SortUnspecified SortKey = iota
	// SortNameAsc orders by name, A to Z.
	SortNameAsc
	// SortNameDesc orders by name, Z to A.
	SortNameDesc
	// SortHireDateDesc orders by hire date, newest first.
	SortHireDateDesc
	// SortHireDateAsc orders by hire date, oldest first.
	SortHireDateAsc
	// SortJobTitle keeps source order and narrows by the filter value.
	SortJobTitle
)

// ErrUnknownSortKey is returned by ParseSortKey for unrecognised input.
var ErrUnknownSortKey = errors.New("unknown sort key")

// sortKeyNames are the canonical text forms, matching the web UI tokens.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sortKeyNames = map[SortKey]string{
	SortUnspecified:  "id",
	SortNameAsc:      "name",
	SortNameDesc:     "name-reverse",
	SortHireDateDesc: "hire-date",
	SortHireDateAsc:  "hire-date-reverse",
	SortJobTitle:     "job-title",
}

// String returns the canonical text form of the key.
func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// IsValid reports whether k is a known key.
func (k SortKey) IsValid() bool {
	_, ok := sortKeyNames[k]
	return ok
}

// IsOrdering reports whether k orders records (every key except job-title).
func (k SortKey) IsOrdering() bool {
	return k.IsValid() && k != SortJobTitle
}

// Label returns a short human description of the key.
func (k SortKey) Label() string {
	switch k {
	case SortNameAsc:
		return "Name A-Z"
	case SortNameDesc:
		return "Name Z-A"
	case SortHireDateDesc:
		return "Newest first"
	case SortHireDateAsc:
		return "Oldest first"
	case SortJobTitle:
		return "Job title"
	case SortUnspecified:
		return "ID"
	default:
		return k.String()
	}
}

// SortKeys returns every key in declaration order.
func SortKeys() []SortKey {
	return []SortKey{SortUnspecified, SortNameAsc, SortNameDesc, SortHireDateDesc, SortHireDateAsc, SortJobTitle}
}

// ParseSortKey parses a sort expression.
// Accepted forms are the canonical names ("name", "name-reverse", "hire-date",
// "hire-date-reverse", "job-title", "id"), the empty string, and
// "field:order" for name and hire-date ("name:desc", "hire-date:asc").
// Input is case-insensitive.
func ParseSortKey(expr string) (SortKey, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return SortUnspecified, nil
	}

	field, order, hasOrder := strings.Cut(s, ":")
	if hasOrder {
		switch {
		case field == "name" && order == "asc":
			return SortNameAsc, nil
		case field == "name" && order == "desc":
			return SortNameDesc, nil
		case field == "hire-date" && order == "asc":
			return SortHireDateAsc, nil
		case field == "hire-date" && order == "desc":
			return SortHireDateDesc, nil
		case field == "id" && order == "asc":
			return SortUnspecified, nil
		}
		return SortUnspecified, fmt.Errorf("%w: %q", ErrUnknownSortKey, expr)
	}

	for key, name := range sortKeyNames {
		if s == name {
			return key, nil
		}
	}
	return SortUnspecified, fmt.Errorf("%w: %q", ErrUnknownSortKey, expr)
}

// NewCollator returns the collator used for name ordering.
// A collator is not safe for concurrent use.
func NewCollator() *collate.Collator {
	return collate.New(language.English)
}

// SortRecords returns a new slice holding records ordered by key.
// The input is never modified. Ordering is stable for every key, so records
// that compare equal keep their relative input order. Records whose hire date
// cannot be parsed sort as the earliest possible date. SortJobTitle returns
// the records in input order. A nil collator uses NewCollator.
func SortRecords(records []roster.Record, key SortKey, collator *collate.Collator) []roster.Record {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []roster.Record{}
	}

	switch key {
	case SortNameAsc, SortNameDesc:
		if collator == nil {
			collator = NewCollator()
		}
		desc := key == SortNameDesc
		slices.SortStableFunc(sorted, func(a, b roster.Record) int {
			if desc {
				a, b = b, a
			}
			return collator.CompareString(a.Name, b.Name)
		})
	case SortHireDateDesc, SortHireDateAsc:
		desc := key == SortHireDateDesc
		slices.SortStableFunc(sorted, func(a, b roster.Record) int {
			if desc {
				a, b = b, a
			}
			return compareHireDates(a.HireDate, b.HireDate)
		})
	case SortJobTitle:
		// Narrowing happens in the filter stage.
	default:
		slices.SortStableFunc(sorted, func(a, b roster.Record) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}

	return sorted
}

// compareHireDates orders unparsable dates before every valid date.
func compareHireDates(a, b roster.HireDate) int {
	ta, okA := a.Time()
	tb, okB := b.Time()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	default:
		return ta.Compare(tb)
	}
}
