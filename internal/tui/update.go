package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/tui/components"
	"github.com/thenoetrevino/salesboard/internal/tui/notifications"
)

// coordMsg carries the outcome of a coordinator command back into Update
type coordMsg struct {
	ev kanban.Event
}

type watchOpenedMsg struct {
	ch  <-chan events.Event
	err error
}

type changeMsg struct {
	ev events.Event
}

type watchClosedMsg struct{}

// lift wraps a coordinator command as a bubbletea command
func (m *Model) lift(cmd kanban.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		ev := cmd(ctx)
		if ev == nil {
			return nil
		}
		return coordMsg{ev: ev}
	}
}

func (m *Model) openWatch() tea.Cmd {
	watch, ctx := m.watch, m.ctx
	return func() tea.Msg {
		ch, err := watch(ctx)
		return watchOpenedMsg{ch: ch, err: err}
	}
}

func waitForChange(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return changeMsg{ev: ev}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case coordMsg:
		return m, m.dispatch(msg.ev)

	case spinner.TickMsg:
		m.notes.Expire(m.now())
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case watchOpenedMsg:
		if msg.err != nil {
			m.notify(notifications.Warning, "Live updates unavailable")
			return m, nil
		}
		m.changes = msg.ch
		return m, waitForChange(msg.ch)

	case changeMsg:
		if !msg.ev.TouchesBoard() {
			return m, waitForChange(m.changes)
		}
		return m, tea.Batch(m.onExternalChange(), waitForChange(m.changes))

	case watchClosedMsg:
		m.changes = nil
		return m, nil
	}
	return m, nil
}

// dispatch feeds ev to the coordinator and surfaces what it reported
func (m *Model) dispatch(ev kanban.Event) tea.Cmd {
	switch ev.(type) {
	case kanban.ReloadRequested, kanban.ConfirmFailed:
		m.reloading = true
	}

	next := m.coord.Dispatch(ev)

	switch ev.(type) {
	case kanban.Reloaded:
		m.reloading = false
		m.loaded = true
		m.clampCursor()
		if cmd := m.reloadIfStale(); cmd != nil {
			next = cmd
		}
	case kanban.ConfirmSucceeded:
		if cmd := m.reloadIfStale(); cmd != nil {
			next = cmd
		}
	}

	for _, n := range m.sink.drain() {
		m.notify(notifications.FromLevel(n.level), n.message)
	}
	return m.lift(next)
}

// onExternalChange reloads after another writer changed data. While a
// reload or one of our own moves is in flight the reload waits for it.
func (m *Model) onExternalChange() tea.Cmd {
	if m.reloading || len(m.coord.Snapshot().Pending) > 0 {
		m.stale = true
		return nil
	}
	return m.dispatch(kanban.ReloadRequested{})
}

// reloadIfStale starts the reload deferred by onExternalChange once nothing
// is in flight
func (m *Model) reloadIfStale() kanban.Cmd {
	if !m.stale || m.reloading || len(m.coord.Snapshot().Pending) > 0 {
		return nil
	}
	m.stale = false
	m.reloading = true
	return m.coord.Dispatch(kanban.ReloadRequested{})
}

func (m *Model) notify(sev notifications.Severity, message string) {
	m.notes.Add(sev, message, m.now())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil
	}

	if m.coord.Phase() == kanban.PhaseDragging {
		return m.handleDragKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	cols := m.coord.Snapshot().Columns

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		if m.col < len(cols)-1 {
			m.col++
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.col < len(cols) && m.row < len(cols[m.col].Items)-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Reload):
		if !m.reloading {
			return m.dispatch(kanban.ReloadRequested{})
		}
	case key.Matches(msg, m.keys.PickUp):
		return m.pickUp(cols)
	}
	return nil
}

func (m *Model) pickUp(cols []board.Column) tea.Cmd {
	r, ok := m.selected(cols)
	if !ok {
		return nil
	}
	if m.coord.IsPending(r.ID) {
		m.notify(notifications.Warning, "Move in progress, try again shortly")
		return nil
	}

	cmd := m.dispatch(kanban.DragStart{RequestID: r.ID})
	if m.coord.Phase() != kanban.PhaseDragging {
		return cmd
	}
	m.targetCol = m.col
	m.dropAt = m.row
	return tea.Batch(cmd, m.preview())
}

func (m *Model) handleDragKey(msg tea.KeyMsg) tea.Cmd {
	snap := m.coord.Snapshot()
	cols := snap.Columns

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.dropAt = -1
		return m.dispatch(kanban.DragEnd{})

	case key.Matches(msg, m.keys.Drop):
		return m.drop(snap.DragID, cols)

	case key.Matches(msg, m.keys.Left):
		if m.targetCol > 0 {
			m.targetCol--
		}
	case key.Matches(msg, m.keys.Right):
		if m.targetCol < len(cols)-1 {
			m.targetCol++
		}
	case key.Matches(msg, m.keys.Up):
		if m.dropAt > 0 {
			m.dropAt--
		}
	case key.Matches(msg, m.keys.Down):
		m.dropAt++
	default:
		return nil
	}

	others := m.targetOthers(cols, snap.DragID)
	m.dropAt = min(max(m.dropAt, 0), len(others))
	return m.preview()
}

// targetOthers lists the cards of the target column minus the dragged one
func (m *Model) targetOthers(cols []board.Column, dragID string) []models.Request {
	if m.targetCol < 0 || m.targetCol >= len(cols) {
		return nil
	}
	return components.Others(cols[m.targetCol], dragID)
}

// dropTarget resolves the current drop position to a column and before id
func (m *Model) dropTarget(cols []board.Column, dragID string) (models.Status, string, bool) {
	if m.targetCol < 0 || m.targetCol >= len(cols) {
		return "", "", false
	}
	others := m.targetOthers(cols, dragID)
	beforeID := ""
	if m.dropAt >= 0 && m.dropAt < len(others) {
		beforeID = others[m.dropAt].ID
	}
	return cols[m.targetCol].Status, beforeID, true
}

func (m *Model) preview() tea.Cmd {
	snap := m.coord.Snapshot()
	status, beforeID, ok := m.dropTarget(snap.Columns, snap.DragID)
	if !ok {
		return m.dispatch(kanban.DragLeave{})
	}
	return m.dispatch(kanban.DragOver{Column: status, BeforeID: beforeID})
}

func (m *Model) drop(dragID string, cols []board.Column) tea.Cmd {
	status, beforeID, ok := m.dropTarget(cols, dragID)
	m.dropAt = -1
	if !ok {
		return m.dispatch(kanban.DragEnd{})
	}

	cmd := m.dispatch(kanban.Drop{Column: status, BeforeID: beforeID})

	// keep the cursor on the moved card
	for ci, col := range m.coord.Snapshot().Columns {
		for ri, r := range col.Items {
			if r.ID == dragID {
				m.col, m.row = ci, ri
			}
		}
	}
	return cmd
}

func (m *Model) selected(cols []board.Column) (models.Request, bool) {
	if m.col < 0 || m.col >= len(cols) {
		return models.Request{}, false
	}
	items := cols[m.col].Items
	if m.row < 0 || m.row >= len(items) {
		return models.Request{}, false
	}
	return items[m.row], true
}

func (m *Model) clampCursor() {
	cols := m.coord.Snapshot().Columns
	if len(cols) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = min(max(m.col, 0), len(cols)-1)
	m.row = min(max(m.row, 0), max(len(cols[m.col].Items)-1, 0))
}
