// Package pagination turns the view flags shared by the list and export
// commands into view.Controller inputs, and describes the resulting page.
//
// This package contains:
//   - ViewParams: --sort, --job-title, --page and --page-size parsing and validation
//   - PaginationMeta: page metadata for structured output
package pagination
