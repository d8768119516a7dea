package tui

// ViewState is the screen the model is showing.
type ViewState int

const (
	// ViewStateLoading waits for the first roster.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the current page.
	ViewStateList
	// ViewStateDetail shows one employee.
	ViewStateDetail
	// ViewStateConfirmDelete asks before deleting the selected employee.
	ViewStateConfirmDelete
	// ViewStateError ends the program with an error.
	ViewStateError
	// ViewStateQuitting ends the program normally.
	ViewStateQuitting
)

// Layout defaults used before the first WindowSizeMsg.
const (
	defaultWidth  = 100
	defaultHeight = 24
	minHeight     = 3

	// chromeHeight is the rows taken by the title, table header, status and help lines.
	chromeHeight = 7
)
