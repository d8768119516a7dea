package pagination

import (
	"github.com/rshade/roster/internal/view"
)

// PaginationMeta contains metadata about a rendered page.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int    `json:"current_page"           yaml:"current_page"`
	PageSize    int    `json:"page_size"              yaml:"page_size"`
	TotalPages  int    `json:"total_pages"            yaml:"total_pages"`
	TotalItems  int    `json:"total_items"            yaml:"total_items"`
	SourceItems int    `json:"source_items"           yaml:"source_items"`
	HasPrevious bool   `json:"has_previous"           yaml:"has_previous"`
	HasNext     bool   `json:"has_next"               yaml:"has_next"`
	Sort        string `json:"sort"                   yaml:"sort"`
	JobTitle    string `json:"job_title,omitempty"    yaml:"job_title,omitempty"`
}

// NewPaginationMeta describes the page held by snap.
func NewPaginationMeta(snap view.Snapshot) PaginationMeta {
	return PaginationMeta{
		CurrentPage: snap.PageIndex,
		PageSize:    snap.PageSize,
		TotalPages:  snap.TotalPages,
		TotalItems:  len(snap.Filtered),
		SourceItems: snap.SourceCount,
		HasPrevious: snap.HasPrevious(),
		HasNext:     snap.HasNext(),
		Sort:        snap.SortKey.String(),
		JobTitle:    string(snap.FilterValue),
	}
}
