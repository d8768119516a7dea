package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor centers the selection in the window.
const halfViewportDivisor = 2

// RenderFunc renders one row. selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// KeyMap holds the navigation bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultKeyMap returns arrow, vim and home/end bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	}
}

// Model is a selectable window over items.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	keys       KeyMap

	selected    int
	visibleFrom int
	visibleTo   int
	height      int
}

// New returns a list over items showing at most height rows.
func New[T any](items []T, height int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		keys:       DefaultKeyMap(),
		height:     max(height, 1),
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the selection on navigation keys.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.SetSelected(m.selected - 1)
	case key.Matches(keyMsg, m.keys.Down):
		m.SetSelected(m.selected + 1)
	case key.Matches(keyMsg, m.keys.Top):
		m.SetSelected(0)
	case key.Matches(keyMsg, m.keys.Bottom):
		m.SetSelected(len(m.items) - 1)
	}
	return m, nil
}

// SetItems replaces the rows and keeps the selection in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetHeight changes the number of visible rows.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.updateVisibleRange()
}

// SetSelected selects index, clamped to the available rows.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.updateVisibleRange()
}

// updateVisibleRange keeps the selected row inside [visibleFrom, visibleTo).
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := m.selected - m.height/halfViewportDivisor
	from = max(from, 0)
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}
	m.visibleFrom, m.visibleTo = from, to
}

// View renders the visible rows.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		if i > m.visibleFrom {
			sb.WriteByte('\n')
		}
		sb.WriteString(m.renderFunc(m.items[i], i == m.selected))
	}
	return sb.String()
}

// Len returns the number of rows.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the selected row, or nil when the list is empty.
func (m *Model[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}

// VisibleRange returns the rendered index range [from, to).
func (m *Model[T]) VisibleRange() (int, int) {
	return m.visibleFrom, m.visibleTo
}

// Keys returns the navigation bindings for help rendering.
func (m *Model[T]) Keys() KeyMap {
	return m.keys
}
