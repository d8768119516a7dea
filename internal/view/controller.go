package view

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"

	"github.com/rshade/roster/internal/roster"
)

// Snapshot is the derived, read-only view of the roster.
// Slices in a Snapshot are never modified after it is published.
type Snapshot struct {
	// Ordered is the source after the sort stage.
	Ordered []roster.Record
	// Filtered is Ordered after the filter stage.
	Filtered []roster.Record
	// Page is the current page of Filtered.
	Page []roster.Record
	// TotalPages is max(1, ceil(len(Filtered)/PageSize)).
	TotalPages int
	// PageIndex is the effective 1-based page index.
	PageIndex int
	// PageSize is the number of rows per page.
	PageSize int
	// SortKey is the active sort key.
	SortKey SortKey
	// FilterValue is the active job-title filter, or "".
	FilterValue roster.JobTitle
	// SourceCount is the number of records in the source collection.
	SourceCount int
}

// HasNext reports whether a page follows the current one.
func (s Snapshot) HasNext() bool {
	return s.PageIndex < s.TotalPages
}

// HasPrevious reports whether a page precedes the current one.
func (s Snapshot) HasPrevious() bool {
	return s.PageIndex > FirstPage
}

// Empty reports whether the filtered view holds no records.
func (s Snapshot) Empty() bool {
	return len(s.Filtered) == 0
}

// Controller owns the view inputs and the current Snapshot.
//
// Every setter validates its input, updates state and runs one synchronous
// recompute of the full sort, filter and pagination pipeline. Invalid input is
// ignored and the prior value is kept; setters report whether they accepted
// the value. The zero value is not usable; construct with NewController.
type Controller struct {
	source []roster.Record

	sortKey     SortKey
	orderingKey SortKey
	filter      roster.JobTitle
	pageSize    int
	page        int

	collator *collate.Collator
	logger   zerolog.Logger

	snapshot Snapshot
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the initial page size. Values below MinPageSize are ignored.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size >= MinPageSize {
			c.pageSize = size
		}
	}
}

// WithSortKey sets the initial ordering key. SortJobTitle and unknown keys are ignored.
func WithSortKey(key SortKey) Option {
	return func(c *Controller) {
		if key.IsOrdering() {
			c.sortKey = key
			c.orderingKey = key
		}
	}
}

// WithLogger sets the logger used to report rejected input.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController returns a controller over an empty source.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		sortKey:     SortUnspecified,
		orderingKey: SortUnspecified,
		pageSize:    DefaultPageSize,
		page:        FirstPage,
		collator:    NewCollator(),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recompute()
	return c
}

// Snapshot returns the current derived view.
func (c *Controller) Snapshot() Snapshot {
	return c.snapshot
}

// Source returns the current source collection. Callers must not modify it.
func (c *Controller) Source() []roster.Record {
	return c.source
}

// SetSource replaces the source collection. The controller keeps its own copy,
// so later changes to records do not leak into the view.
func (c *Controller) SetSource(records []roster.Record) {
	src := make([]roster.Record, len(records))
	copy(src, records)
	c.source = src
	c.recompute()
}

// SetSortKey activates key.
// Name, hire-date and unspecified keys clear the job-title filter.
// SortJobTitle keeps the remembered ordering key but stops ordering by it;
// without a filter value it yields an empty view.
func (c *Controller) SetSortKey(key SortKey) bool {
	if !key.IsValid() {
		c.reject("set_sort_key", "unknown sort key", key.String())
		return false
	}

	c.sortKey = key
	if key.IsOrdering() {
		c.orderingKey = key
		c.filter = ""
	}
	c.recompute()
	return true
}

// SetFilterValue sets the job-title filter.
// A non-empty title activates SortJobTitle. An empty title clears the filter
// and, when job-title mode was active, restores the remembered ordering key.
func (c *Controller) SetFilterValue(title roster.JobTitle) bool {
	c.filter = title
	switch {
	case title != "":
		c.sortKey = SortJobTitle
	case c.sortKey == SortJobTitle:
		c.sortKey = c.orderingKey
	}
	c.recompute()
	return true
}

// SetPageSize changes the number of rows per page. Sizes below MinPageSize
// are rejected and the current size is kept.
func (c *Controller) SetPageSize(size int) bool {
	if size < MinPageSize {
		c.reject("set_page_size", "page size must be positive", size)
		return false
	}
	c.pageSize = size
	c.recompute()
	return true
}

// GoToPage requests page n. Out-of-range requests are clamped.
func (c *Controller) GoToPage(n int) bool {
	c.page = n
	c.recompute()
	return true
}

// NextPage moves forward one page. It is a no-op on the last page.
func (c *Controller) NextPage() bool {
	if !c.snapshot.HasNext() {
		return false
	}
	c.page = c.snapshot.PageIndex + 1
	c.recompute()
	return true
}

// PreviousPage moves back one page. It is a no-op on the first page.
func (c *Controller) PreviousPage() bool {
	if !c.snapshot.HasPrevious() {
		return false
	}
	c.page = c.snapshot.PageIndex - 1
	c.recompute()
	return true
}

// Reset clears the source and returns every input to its initial value
// except the page size.
func (c *Controller) Reset() {
	c.source = nil
	c.sortKey = SortUnspecified
	c.orderingKey = SortUnspecified
	c.filter = ""
	c.page = FirstPage
	c.recompute()
}

// recompute rebuilds the snapshot from the current inputs and stores the
// clamped page index back so no stale index outlives a shrinking view.
func (c *Controller) recompute() {
	ordered := SortRecords(c.source, c.sortKey, c.collator)

	var filtered []roster.Record
	switch {
	case c.sortKey == SortJobTitle && c.filter == "":
		filtered = []roster.Record{}
	default:
		filtered = FilterByJobTitle(ordered, c.filter)
	}

	page := Paginate(filtered, c.pageSize, c.page)
	c.page = page.Index

	c.snapshot = Snapshot{
		Ordered:     ordered,
		Filtered:    filtered,
		Page:        page.Records,
		TotalPages:  page.TotalPages,
		PageIndex:   page.Index,
		PageSize:    c.pageSize,
		SortKey:     c.sortKey,
		FilterValue: c.filter,
		SourceCount: len(c.source),
	}
}

func (c *Controller) reject(operation, reason string, value any) {
	c.logger.Debug().
		Str("component", "view").
		Str("operation", operation).
		Interface("value", value).
		Msg(reason)
}
