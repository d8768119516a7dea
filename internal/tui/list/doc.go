// Package listview renders a selectable, height-limited window over a slice
// of rows for Bubble Tea models.
//
// Only the rows that fit the viewport are rendered, and the window follows
// the selection. Items can be replaced in place; the selection is clamped so
// it always points at a row while any rows exist.
package listview
