package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/roster/internal/roster"
	"github.com/rshade/roster/internal/view"
)

// Flag defaults.
const (
	DefaultPage     = view.FirstPage
	DefaultPageSize = 0 // 0 keeps the configured page size
	MinPage         = view.FirstPage
)

// Validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = errors.New("page-size must be >= 1")
	ErrInvalidJobTitle   = errors.New("unknown job title")
	ErrJobTitleRequired  = errors.New("--sort job-title requires --job-title")
	ErrInvalidSortFormat = errors.New("invalid sort: use id, name, name-reverse, hire-date, hire-date-reverse or job-title")
)

// ViewParams holds the view flags of a command.
type ViewParams struct {
	// Sort is a sort expression accepted by view.ParseSortKey.
	Sort string
	// JobTitle filters to one job title. Matching is case-insensitive.
	JobTitle string
	// Page is the 1-based page to show. Out-of-range pages are clamped.
	Page int
	// PageSize overrides the configured rows per page when > 0.
	PageSize int
}

// NewViewParams returns ViewParams with default values.
func NewViewParams() *ViewParams {
	return &ViewParams{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// AddFlags registers the view flags on cmd, bound to p.
func (p *ViewParams) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.Sort, "sort", "",
		"sort order: id, name, name-reverse, hire-date (newest first), hire-date-reverse, job-title")
	cmd.Flags().StringVar(&p.JobTitle, "job-title", "",
		fmt.Sprintf("only show one job title (%s)", strings.Join(jobTitleNames(), ", ")))
	cmd.Flags().IntVar(&p.Page, "page", DefaultPage, "page number to show (1-based)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", DefaultPageSize, "rows per page (default from config)")
}

// Validate checks the flag values without touching a controller.
func (p ViewParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w, got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, p.PageSize)
	}
	key, err := p.SortKey()
	if err != nil {
		return err
	}
	title, err := ParseJobTitle(p.JobTitle)
	if err != nil {
		return err
	}
	if key == view.SortJobTitle && title == "" {
		return ErrJobTitleRequired
	}
	return nil
}

// SortKey parses Sort.
func (p ViewParams) SortKey() (view.SortKey, error) {
	key, err := view.ParseSortKey(p.Sort)
	if err != nil {
		return view.SortUnspecified, fmt.Errorf("%w: %q", ErrInvalidSortFormat, p.Sort)
	}
	return key, nil
}

// Apply validates p and pushes it into ctrl. The sort flag replaces the
// configured ordering only when it was given; a job title always wins over
// the ordering, as it does in the controller.
func (p ViewParams) Apply(ctrl *view.Controller) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.PageSize > 0 {
		ctrl.SetPageSize(p.PageSize)
	}
	if p.Sort != "" {
		key, _ := p.SortKey()
		if key != view.SortJobTitle {
			ctrl.SetSortKey(key)
		}
	}
	if title, _ := ParseJobTitle(p.JobTitle); title != "" {
		ctrl.SetFilterValue(title)
	}
	ctrl.GoToPage(p.Page)
	return nil
}

// ParseJobTitle matches s against the known job titles ignoring case.
// The empty string means no filter.
func ParseJobTitle(s string) (roster.JobTitle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, t := range roster.JobTitles() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q: want one of %s", ErrInvalidJobTitle, s, strings.Join(jobTitleNames(), ", "))
}

func jobTitleNames() []string {
	titles := roster.JobTitles()
	names := make([]string, len(titles))
	for i, t := range titles {
		names[i] = fmt.Sprintf("%q", string(t))
	}
	return names
}
