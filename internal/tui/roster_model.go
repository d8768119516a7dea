// Package tui implements the interactive employee table.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/roster/internal/engine"
	"github.com/rshade/roster/internal/roster"
	listview "github.com/rshade/roster/internal/tui/list"
	"github.com/rshade/roster/internal/view"
)

// Messages carrying collaborator results back to the update loop.
type (
	fetchDoneMsg struct {
		result engine.FetchResult
	}
	mutationDoneMsg struct {
		result engine.MutationResult
	}
)

// RosterModel is the Bubble Tea model for the employee table.
//
// Fetches and deletes run as commands; their results are applied on the
// update loop in completion order. While a refresh is in flight the last
// snapshot stays on screen.
type RosterModel struct {
	ctx    context.Context
	engine *engine.Engine

	state   ViewState
	list    *listview.Model[roster.Record]
	keys    KeyMap
	help    help.Model
	loading *LoadingState

	refreshing    bool
	width         int
	height        int
	notice        string
	err           error
	detail        roster.Record
	pendingDelete roster.Record
}

// NewRosterModel returns a model over eng. When the engine already holds a
// roster (for example from the cache) it is shown at once while the first
// refresh runs.
func NewRosterModel(ctx context.Context, eng *engine.Engine) *RosterModel {
	m := &RosterModel{
		ctx:     ctx,
		engine:  eng,
		state:   ViewStateLoading,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		loading: NewLoadingState("Loading employees..."),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.list = listview.New(eng.Snapshot().Page, m.listHeight(), m.renderRow)
	if eng.Snapshot().SourceCount > 0 {
		m.state = ViewStateList
	}
	return m
}

// Init starts the first refresh.
func (m *RosterModel) Init() tea.Cmd {
	return m.startRefresh()
}

// Err returns the error that ended the program, if any. It wraps
// roster.ErrNotAuthorized when the credentials were rejected.
func (m *RosterModel) Err() error {
	return m.err
}

// State returns the current screen.
func (m *RosterModel) State() ViewState {
	return m.state
}

// Update handles messages and updates the model state.
func (m *RosterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.list.SetHeight(m.listHeight())
		return m, nil
	case fetchDoneMsg:
		return m.handleFetchDone(msg)
	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.refreshing {
			return m, m.loading.Update(msg)
		}
		return m, nil
	}
}

func (m *RosterModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	switch m.state {
	case ViewStateLoading:
		if key.Matches(msg, m.keys.Quit) {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, nil
	case ViewStateList:
		return m.handleListKey(msg)
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m, nil
	}
}

func (m *RosterModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.engine.Controller()
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPage):
		if ctrl.NextPage() {
			m.syncList(true)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if ctrl.PreviousPage() {
			m.syncList(true)
		}
	case key.Matches(msg, m.keys.SortNameAsc):
		m.sortBy(view.SortNameAsc)
	case key.Matches(msg, m.keys.SortNameDesc):
		m.sortBy(view.SortNameDesc)
	case key.Matches(msg, m.keys.SortNewest):
		m.sortBy(view.SortHireDateDesc)
	case key.Matches(msg, m.keys.SortOldest):
		m.sortBy(view.SortHireDateAsc)
	case key.Matches(msg, m.keys.ResetSort):
		m.sortBy(view.SortUnspecified)
	case key.Matches(msg, m.keys.CycleTitle):
		ctrl.SetFilterValue(nextJobTitle(ctrl.Snapshot().FilterValue))
		m.syncList(true)
	case key.Matches(msg, m.keys.GrowPage):
		ctrl.SetPageSize(ctrl.Snapshot().PageSize + 1)
		m.syncList(false)
	case key.Matches(msg, m.keys.ShrinkPage):
		if !ctrl.SetPageSize(ctrl.Snapshot().PageSize - 1) {
			m.notice = "Page size cannot go below 1"
		}
		m.syncList(false)
	case key.Matches(msg, m.keys.Refresh):
		if !m.refreshing {
			return m, m.startRefresh()
		}
	case key.Matches(msg, m.keys.Detail):
		if r := m.list.SelectedItem(); r != nil {
			m.detail = *r
			m.state = ViewStateDetail
		}
	case key.Matches(msg, m.keys.Delete):
		if r := m.list.SelectedItem(); r != nil {
			m.pendingDelete = *r
			m.state = ViewStateConfirmDelete
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.list.SetHeight(m.listHeight())
	default:
		_, cmd := m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *RosterModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Detail):
		m.state = ViewStateList
	case key.Matches(msg, m.keys.Delete):
		m.pendingDelete = m.detail
		m.state = ViewStateConfirmDelete
	}
	return m, nil
}

func (m *RosterModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.state = ViewStateList
	if !key.Matches(msg, m.keys.Confirm) {
		m.notice = "Delete cancelled"
		return m, nil
	}

	id := m.pendingDelete.ID
	m.notice = fmt.Sprintf("Deleting #%d...", id)
	ctx, eng := m.ctx, m.engine
	return m, func() tea.Msg {
		return mutationDoneMsg{result: eng.SendDelete(ctx, id)}
	}
}

func (m *RosterModel) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false
	err := m.engine.Apply(msg.result)

	switch {
	case errors.Is(err, roster.ErrNotAuthorized):
		return m.fail(err)
	case err != nil:
		m.notice = "Refresh failed, showing last known roster: " + err.Error()
		if m.state == ViewStateLoading {
			m.state = ViewStateList
		}
	case m.state == ViewStateLoading:
		m.state = ViewStateList
	}

	m.syncList(false)
	if m.state == ViewStateDetail {
		if fresh, lookupErr := m.engine.Lookup(m.detail.ID); lookupErr == nil {
			m.detail = fresh
		}
	}
	return m, nil
}

func (m *RosterModel) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	res := msg.result
	err := m.engine.Settle(res)

	switch {
	case errors.Is(err, roster.ErrNotAuthorized):
		return m.fail(err)
	case err != nil:
		m.notice = fmt.Sprintf("Delete of #%d failed: %v", res.ID, err)
		return m, nil
	case !res.Accepted:
		m.notice = fmt.Sprintf("Delete of #%d was declined", res.ID)
		return m, nil
	default:
		m.notice = fmt.Sprintf("Deleted #%d", res.ID)
		return m, m.startRefresh()
	}
}

// fail ends the program with err.
func (m *RosterModel) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.state = ViewStateError
	m.syncList(true)
	return m, tea.Quit
}

// startRefresh issues a fetch and restarts the spinner.
func (m *RosterModel) startRefresh() tea.Cmd {
	m.refreshing = true
	ctx, eng := m.ctx, m.engine
	return tea.Batch(m.loading.Init(), func() tea.Msg {
		return fetchDoneMsg{result: eng.Fetch(ctx)}
	})
}

func (m *RosterModel) sortBy(sortKey view.SortKey) {
	m.engine.Controller().SetSortKey(sortKey)
	m.syncList(true)
}

// syncList pushes the current page into the list. top moves the selection
// to the first row, for changes that show different records.
func (m *RosterModel) syncList(top bool) {
	m.list.SetItems(m.engine.Snapshot().Page)
	if top {
		m.list.SetSelected(0)
	}
}

func (m *RosterModel) listHeight() int {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= len(m.keys.FullHelp()[0])
	}
	return max(h, minHeight)
}

// nextJobTitle cycles the filter through every job title and back to none.
func nextJobTitle(current roster.JobTitle) roster.JobTitle {
	titles := roster.JobTitles()
	if current == "" {
		return titles[0]
	}
	for i, t := range titles {
		if t == current && i+1 < len(titles) {
			return titles[i+1]
		}
	}
	return ""
}
