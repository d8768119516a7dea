// Package view derives the page of employees a user sees from the full roster.
//
// The derivation is a one-way pipeline:
//
//	source -> Sort Stage -> Filter Stage -> Pagination Stage -> Snapshot
//
// Each stage is a pure function over its input (SortRecords, FilterByJobTitle,
// Paginate). Controller owns the inputs (source, sort key, filter value, page
// window) and recomputes the whole pipeline synchronously after every change,
// so a Snapshot is always internally consistent. Controller is not safe for
// concurrent use; it is meant to be driven from a single goroutine such as a
// command or a Bubble Tea update loop.
package view
