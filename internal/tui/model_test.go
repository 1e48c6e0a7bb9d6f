package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/tui/notifications"
)

// fakeRemote keeps requests in memory and applies status writes
type fakeRemote struct {
	mu        sync.Mutex
	requests  []models.Request
	updateErr error
	lists     int
}

func (f *fakeRemote) ListRequests(context.Context) ([]models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]models.Request(nil), f.requests...), nil
}

func (f *fakeRemote) UpdateRequestStatus(_ context.Context, id string, status models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].Status = status
		}
	}
	return nil
}

func (f *fakeRemote) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func seed() []models.Request {
	return []models.Request{
		{ID: "A", Title: "Taco night", Status: models.StatusNew},
		{ID: "B", Title: "Best pho", Status: models.StatusNew},
		{ID: "C", Title: "Steakhouse", Status: models.StatusDone},
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestModel(t *testing.T, remote *fakeRemote, opts Options) (*Model, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	if opts.Now == nil {
		opts.Now = clk.now
	}
	sink := Sink()
	coord := kanban.NewCoordinator(remote, board.New(nil), kanban.WithNotifier(sink))
	m := New(context.Background(), coord, sink, opts)
	drain(t, m, m.Init())
	return m, clk
}

// drain runs cmd and feeds coordinator and watch messages back into the
// model until nothing is left. Spinner ticks are dropped so the loop ends.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case coordMsg, watchOpenedMsg, changeMsg, watchClosedMsg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		drain(t, m, cmd)
	}
}

func columnIDs(m *Model, status models.Status) []string {
	for _, col := range m.coord.Snapshot().Columns {
		if col.Status == status {
			ids := []string{}
			for _, r := range col.Items {
				ids = append(ids, r.ID)
			}
			return ids
		}
	}
	return nil
}

func TestInit_LoadsBoard(t *testing.T) {
	m, _ := newTestModel(t, &fakeRemote{requests: seed()}, Options{})

	assert.True(t, m.loaded)
	assert.False(t, m.reloading)
	assert.Equal(t, []string{"A", "B"}, columnIDs(m, models.StatusNew))
	assert.Contains(t, m.View(), "Taco night")
}

func TestNavigation_Clamps(t *testing.T) {
	m, _ := newTestModel(t, &fakeRemote{requests: seed()}, Options{})

	press(t, m, "j", "j", "j")
	assert.Equal(t, 1, m.row)

	press(t, m, "l")
	assert.Equal(t, 1, m.col)
	assert.Equal(t, 0, m.row, "empty column clamps the row")

	press(t, m, "h", "h")
	assert.Equal(t, 0, m.col)
}

func TestDragAndDrop_MovesCardAndConfirms(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	m, _ := newTestModel(t, remote, Options{})

	// pick up A, move right into On Progress, drop
	press(t, m, " ")
	assert.Equal(t, kanban.PhaseDragging, m.coord.Phase())
	assert.Contains(t, m.View(), "─ drop")

	press(t, m, "l", "enter")

	assert.Equal(t, kanban.PhaseIdle, m.coord.Phase())
	assert.Equal(t, []string{"A"}, columnIDs(m, models.StatusOnProgress))
	state, _ := m.coord.MoveState("A")
	assert.Equal(t, kanban.MoveConfirmed, state)

	latest, ok := m.notes.Latest()
	require.True(t, ok)
	assert.Equal(t, "Moved to On Progress", latest.Message)

	// cursor follows the card
	assert.Equal(t, 1, m.col)
	assert.Equal(t, 0, m.row)
}

func TestDragAndDrop_InsertBefore(t *testing.T) {
	m, _ := newTestModel(t, &fakeRemote{requests: seed()}, Options{})

	// pick up B and drop it before A in the same column
	press(t, m, "j", " ", "k", "enter")

	assert.Equal(t, []string{"B", "A"}, columnIDs(m, models.StatusNew))
}

func TestDragAndDrop_Cancel(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	m, _ := newTestModel(t, remote, Options{})

	press(t, m, " ", "l", "l", "esc")

	assert.Equal(t, kanban.PhaseIdle, m.coord.Phase())
	assert.Equal(t, []string{"A", "B"}, columnIDs(m, models.StatusNew))
	assert.Equal(t, -1, m.dropAt)
}

func TestDrop_FailureReloads(t *testing.T) {
	remote := &fakeRemote{requests: seed(), updateErr: errors.New("boom")}
	m, _ := newTestModel(t, remote, Options{})
	before := remote.listCount()

	press(t, m, " ", "l", "l", "enter")

	assert.Equal(t, before+1, remote.listCount())
	assert.Equal(t, []string{"A", "B"}, columnIDs(m, models.StatusNew), "server state restored")
	latest, ok := m.notes.Latest()
	require.True(t, ok)
	assert.Equal(t, notifications.Error, latest.Severity)
}

func TestPickUp_PendingIsRejected(t *testing.T) {
	m, _ := newTestModel(t, &fakeRemote{requests: seed()}, Options{})

	// drop without running the confirm command
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	_, confirm := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.coord.IsPending("A"))
	assert.Contains(t, m.View(), "Taco night")

	m.col, m.row = 1, 0
	press(t, m, " ")
	assert.Equal(t, kanban.PhaseIdle, m.coord.Phase())
	latest, _ := m.notes.Latest()
	assert.Equal(t, notifications.Warning, latest.Severity)

	drain(t, m, confirm)
	assert.False(t, m.coord.IsPending("A"))
}

func TestReloadKey(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	m, _ := newTestModel(t, remote, Options{})
	before := remote.listCount()

	press(t, m, "r")

	assert.Equal(t, before+1, remote.listCount())
}

func TestNotificationsExpireOnTick(t *testing.T) {
	m, clk := newTestModel(t, &fakeRemote{requests: seed()}, Options{NotificationTTL: time.Second})

	press(t, m, " ", "l", "enter")
	_, ok := m.notes.Latest()
	require.True(t, ok)

	clk.t = clk.t.Add(2 * time.Second)
	_, _ = m.Update(spinner.TickMsg{})

	_, ok = m.notes.Latest()
	assert.False(t, ok)
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	ch := make(chan events.Event, 1)
	ch <- events.Event{Type: events.EventRequestChanged, RequestID: "C"}
	close(ch)

	m, _ := newTestModel(t, remote, Options{
		Watch: func(context.Context) (<-chan events.Event, error) { return ch, nil },
	})

	assert.Equal(t, 2, remote.listCount(), "initial load plus one reload")
	assert.Nil(t, m.changes)
}

func TestWatch_IgnoresRestaurantChanges(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	ch := make(chan events.Event, 1)
	ch <- events.Event{Type: events.EventRestaurantChanged, RestaurantID: "s-1"}
	close(ch)

	newTestModel(t, remote, Options{
		Watch: func(context.Context) (<-chan events.Event, error) { return ch, nil },
	})

	assert.Equal(t, 1, remote.listCount(), "only the initial load")
}

func TestWatch_DefersWhileMovePending(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	m, _ := newTestModel(t, remote, Options{})

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	_, confirm := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.coord.IsPending("A"))

	assert.Nil(t, m.onExternalChange())
	assert.True(t, m.stale)
	assert.Equal(t, 1, remote.listCount())

	drain(t, m, confirm)

	assert.False(t, m.stale)
	assert.Equal(t, 2, remote.listCount(), "deferred reload runs once the move settles")
	assert.Equal(t, []string{"A"}, columnIDs(m, models.StatusOnProgress))
}

func TestWatch_ChangeDuringReloadRunsAnotherReload(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	m, _ := newTestModel(t, remote, Options{})

	inFlight := m.dispatch(kanban.ReloadRequested{})
	require.True(t, m.reloading)

	assert.Nil(t, m.onExternalChange())
	assert.True(t, m.stale)

	drain(t, m, inFlight)

	assert.False(t, m.stale)
	assert.False(t, m.reloading)
	assert.Equal(t, 3, remote.listCount(), "initial load, the in-flight reload and the deferred one")
}

func TestWatch_ErrorNotifies(t *testing.T) {
	m, _ := newTestModel(t, &fakeRemote{requests: seed()}, Options{
		Watch: func(context.Context) (<-chan events.Event, error) { return nil, errors.New("offline") },
	})

	latest, ok := m.notes.Latest()
	require.True(t, ok)
	assert.Equal(t, "Live updates unavailable", latest.Message)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, &fakeRemote{requests: seed()}, Options{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_EmptyBoard(t *testing.T) {
	m, _ := newTestModel(t, &fakeRemote{}, Options{})
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "No requests")
	assert.Contains(t, view, "New (0)")
}
