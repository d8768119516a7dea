package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the roster table bindings.
type KeyMap struct {
	NextPage     key.Binding
	PrevPage     key.Binding
	Up           key.Binding
	Down         key.Binding
	SortNameAsc  key.Binding
	SortNameDesc key.Binding
	SortNewest   key.Binding
	SortOldest   key.Binding
	ResetSort    key.Binding
	CycleTitle   key.Binding
	GrowPage     key.Binding
	ShrinkPage   key.Binding
	Refresh      key.Binding
	Detail       key.Binding
	Delete       key.Binding
	Confirm      key.Binding
	Back         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPage:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		PrevPage:     key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SortNameAsc:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "name A-Z")),
		SortNameDesc: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "name Z-A")),
		SortNewest:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "newest first")),
		SortOldest:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "oldest first")),
		ResetSort:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset sort")),
		CycleTitle:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "job title filter")),
		GrowPage:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		ShrinkPage:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Detail:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Delete:       key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Confirm:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.Detail, k.Delete, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.SortNameAsc, k.SortNameDesc, k.SortNewest, k.SortOldest, k.ResetSort},
		{k.CycleTitle, k.GrowPage, k.ShrinkPage},
		{k.Detail, k.Delete, k.Refresh, k.Quit},
	}
}
