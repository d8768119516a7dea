package view

import "github.com/rshade/roster/internal/roster"

// Page window defaults and bounds.
const (
	// DefaultPageSize is the number of rows per page when none is configured.
	DefaultPageSize = 10
	// MinPageSize is the smallest accepted page size.
	MinPageSize = 1
	// FirstPage is the 1-based index of the first page.
	FirstPage = 1
)

// Page is the result of the pagination stage.
type Page struct {
	// Records is the half-open slice [(Index-1)*size, Index*size) of the input.
	Records []roster.Record
	// TotalPages is max(1, ceil(len(input)/size)).
	TotalPages int
	// Index is the requested page clamped to [1, TotalPages].
	Index int
}

// TotalPages returns max(1, ceil(count/pageSize)). A non-positive pageSize is
// treated as MinPageSize.
func TotalPages(count, pageSize int) int {
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	pages := count / pageSize
	if count%pageSize > 0 {
		pages++
	}
	return max(pages, FirstPage)
}

// ClampPage returns requested clamped to [1, totalPages].
func ClampPage(requested, totalPages int) int {
	return min(max(requested, FirstPage), max(totalPages, FirstPage))
}

// Paginate slices records into the page at the requested index. Out-of-range
// requests are clamped rather than rejected, and the last page may be shorter
// than pageSize. The returned Records slice shares the input's backing array.
func Paginate(records []roster.Record, pageSize, requested int) Page {
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}

	total := TotalPages(len(records), pageSize)
	index := ClampPage(requested, total)

	start := (index - 1) * pageSize
	end := min(start+pageSize, len(records))
	if start >= len(records) {
		return Page{Records: []roster.Record{}, TotalPages: total, Index: index}
	}

	return Page{
		Records:    records[start:end:end],
		TotalPages: total,
		Index:      index,
	}
}
