// Package engine binds the view controller to the employee service.
//
// The Engine owns one view.Controller and drives it from the results of the
// DataSource and Mutator collaborators: fetched rosters replace the source,
// successful mutations trigger a refresh, authorization failures clear the
// view, and transient failures keep the last snapshot on screen.
//
// An Engine is not safe for concurrent use except for Fetch, which touches
// no view state and may run on any goroutine. Results are applied in the
// order Apply is called, so the last completed fetch wins.
package engine
