package kanban

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type statusWrite struct {
	ID     string
	Status models.Status
}

// fakeRemote serves a fixed list and records status writes
type fakeRemote struct {
	mu        sync.Mutex
	requests  []models.Request
	listErr   error
	updateErr error
	failIDs   map[string]bool
	writes    []statusWrite
	lists     int
}

func (f *fakeRemote) ListRequests(context.Context) ([]models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Request(nil), f.requests...), nil
}

func (f *fakeRemote) UpdateRequestStatus(_ context.Context, id string, status models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, statusWrite{ID: id, Status: status})
	if f.failIDs[id] {
		return errors.New("write rejected")
	}
	return f.updateErr
}

type note struct {
	Level   Level
	Message string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (r *recordingNotifier) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{Level: level, Message: message})
}

func (r *recordingNotifier) levels() []Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Level, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Level
	}
	return out
}

func seed() []models.Request {
	return []models.Request{
		{ID: "A", Status: models.StatusNew},
		{ID: "B", Status: models.StatusNew},
		{ID: "C", Status: models.StatusDone},
	}
}

func layout(seq []models.Request) []string {
	out := make([]string, len(seq))
	for i, r := range seq {
		out[i] = r.ID + "(" + string(r.Status) + ")"
	}
	return out
}

// loaded builds a coordinator whose board already shows the remote list
func loaded(t *testing.T, remote *fakeRemote, opts ...Option) (*Coordinator, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	c := NewCoordinator(remote, board.New(nil), append([]Option{WithNotifier(n)}, opts...)...)
	c.Run(context.Background(), c.Load())
	require.Len(t, c.Snapshot().Requests, len(remote.requests))
	return c, n
}

// ============================================================================
// DRAG PHASES
// ============================================================================

func TestDragStart_UnknownIDStaysIdle(t *testing.T) {
	c, _ := loaded(t, &fakeRemote{requests: seed()})

	c.Dispatch(DragStart{RequestID: "Z"})

	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestDragOverAndLeaveOnlyChangePreview(t *testing.T) {
	c, _ := loaded(t, &fakeRemote{requests: seed()})
	before := layout(c.Snapshot().Requests)

	c.Dispatch(DragOver{Column: models.StatusDone})
	assert.Nil(t, c.Snapshot().Preview, "preview needs an active drag")

	c.Dispatch(DragStart{RequestID: "A"})
	assert.Nil(t, c.Dispatch(DragOver{Column: models.StatusDone, BeforeID: "C"}))

	snap := c.Snapshot()
	assert.Equal(t, PhaseDragging, snap.Phase)
	assert.Equal(t, "A", snap.DragID)
	require.NotNil(t, snap.Preview)
	assert.Equal(t, Preview{Column: models.StatusDone, BeforeID: "C"}, *snap.Preview)
	assert.Equal(t, before, layout(snap.Requests))

	c.Dispatch(DragLeave{})
	snap = c.Snapshot()
	assert.Nil(t, snap.Preview)
	assert.Equal(t, PhaseDragging, snap.Phase)
}

func TestDragEndCancelsWithoutMove(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "A"})
	c.Dispatch(DragEnd{})

	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Nil(t, c.Dispatch(Drop{Column: models.StatusDone}), "drop without drag does nothing")
	assert.Equal(t, []string{"A(new)", "B(new)", "C(done)"}, layout(c.Snapshot().Requests))
	assert.Empty(t, remote.writes)
}

// ============================================================================
// DROP AND CONFIRM
// ============================================================================

func TestDrop_AppliesOptimisticallyAndMarksPending(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "A"})
	cmd := c.Dispatch(Drop{Column: models.StatusDone})
	require.NotNil(t, cmd)

	snap := c.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, []string{"B(new)", "C(done)", "A(done)"}, layout(snap.Requests))
	assert.Equal(t, []string{"A"}, snap.Pending)

	state, ok := c.MoveState("A")
	require.True(t, ok)
	assert.Equal(t, MoveDropped, state)
	assert.Empty(t, remote.writes, "the write happens when the command runs")
}

func TestDrop_PendingCardCannotBeDraggedAgain(t *testing.T) {
	c, _ := loaded(t, &fakeRemote{requests: seed()})

	c.Dispatch(DragStart{RequestID: "A"})
	cmd := c.Dispatch(Drop{Column: models.StatusDone})
	require.NotNil(t, cmd)

	c.Dispatch(DragStart{RequestID: "A"})
	assert.Equal(t, PhaseIdle, c.Phase())

	c.Dispatch(DragStart{RequestID: "B"})
	assert.Equal(t, PhaseDragging, c.Phase(), "other cards stay draggable")
}

func TestConfirmSuccess_KeepsLocalOrder(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, n := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "A"})
	c.Run(context.Background(), c.Dispatch(Drop{Column: models.StatusOnProgress}))

	assert.Equal(t, []statusWrite{{ID: "A", Status: models.StatusOnProgress}}, remote.writes)
	assert.Equal(t, []string{"B(new)", "C(done)", "A(on progress)"}, layout(c.Snapshot().Requests))
	assert.False(t, c.IsPending("A"))
	assert.Equal(t, 1, remote.lists, "success does not re-fetch")

	state, _ := c.MoveState("A")
	assert.Equal(t, MoveConfirmed, state)
	assert.Equal(t, []Level{LevelInfo}, n.levels())
}

func TestConfirmFailure_ReloadsAuthoritativeList(t *testing.T) {
	remote := &fakeRemote{requests: seed(), updateErr: errors.New("network down")}
	c, n := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "A"})
	cmd := c.Dispatch(Drop{Column: models.StatusDone, BeforeID: "C"})
	assert.Equal(t, []string{"B(new)", "A(done)", "C(done)"}, layout(c.Snapshot().Requests))

	c.Run(context.Background(), cmd)

	assert.Equal(t, []string{"A(new)", "B(new)", "C(done)"}, layout(c.Snapshot().Requests))
	assert.False(t, c.IsPending("A"))
	assert.Equal(t, 2, remote.lists)

	state, _ := c.MoveState("A")
	assert.Equal(t, MoveRolledBack, state)
	assert.Equal(t, []Level{LevelError}, n.levels())
}

func TestConfirmCommand_MarksConfirming(t *testing.T) {
	c, _ := loaded(t, &fakeRemote{requests: seed()})

	c.Dispatch(DragStart{RequestID: "B"})
	cmd := c.Dispatch(Drop{Column: models.StatusOnHold})

	ev := cmd(context.Background())
	state, _ := c.MoveState("B")
	assert.Equal(t, MoveConfirming, state)
	assert.IsType(t, ConfirmSucceeded{}, ev)
}

func TestDrop_RequestRemovedDuringDrag(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "A"})
	c.Dispatch(Reloaded{Requests: []models.Request{{ID: "B", Status: models.StatusNew}}})

	assert.Nil(t, c.Dispatch(Drop{Column: models.StatusDone}))
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Empty(t, remote.writes)
}

func TestDrop_NormalizesTargetColumn(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "C"})
	c.Run(context.Background(), c.Dispatch(Drop{Column: "ongoing"}))

	assert.Equal(t, []statusWrite{{ID: "C", Status: models.StatusOnProgress}}, remote.writes)
}

// ============================================================================
// TRANSITION GUARD
// ============================================================================

func TestDrop_UnguardedAcceptsAnyColumn(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "C"})
	c.Run(context.Background(), c.Dispatch(Drop{Column: models.StatusNew}))

	assert.Equal(t, []statusWrite{{ID: "C", Status: models.StatusNew}}, remote.writes)
}

func TestDrop_GuardRejectsIllegalTransition(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, n := loaded(t, remote, WithTransitionGuard())

	c.Dispatch(DragStart{RequestID: "C"})
	assert.Nil(t, c.Dispatch(Drop{Column: models.StatusNew}))

	assert.Equal(t, []string{"A(new)", "B(new)", "C(done)"}, layout(c.Snapshot().Requests))
	assert.Equal(t, []Level{LevelWarning}, n.levels())
	assert.False(t, c.IsPending("C"))

	c.Dispatch(DragStart{RequestID: "C"})
	assert.NotNil(t, c.Dispatch(Drop{Column: models.StatusDone, BeforeID: ""}), "same status is always allowed")
}

// ============================================================================
// RELOAD
// ============================================================================

func TestReloadFailure_EmptiesBoard(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, n := loaded(t, remote)

	remote.listErr = errors.New("boom")
	c.Run(context.Background(), c.Dispatch(ReloadRequested{}))

	snap := c.Snapshot()
	assert.Empty(t, snap.Requests)
	require.Len(t, snap.Columns, len(models.BoardStatuses))
	for _, col := range snap.Columns {
		assert.Empty(t, col.Items)
	}
	assert.Equal(t, []Level{LevelError}, n.levels())
}

func TestReload_NormalizesUnknownStatuses(t *testing.T) {
	remote := &fakeRemote{requests: []models.Request{{ID: "A", Status: "archived"}, {ID: "B", Status: "In Progress"}}}
	c, _ := loaded(t, remote)

	assert.Equal(t, []string{"A(new)", "B(on progress)"}, layout(c.Snapshot().Requests))
}

// ============================================================================
// CONCURRENCY
// ============================================================================

func TestConcurrentMovesOfDifferentCards(t *testing.T) {
	defer goleak.VerifyNone(t)

	remote := &fakeRemote{requests: seed()}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "A"})
	first := c.Dispatch(Drop{Column: models.StatusOnHold})
	c.Dispatch(DragStart{RequestID: "B"})
	second := c.Dispatch(Drop{Column: models.StatusDone})

	assert.Equal(t, []string{"A", "B"}, c.Snapshot().Pending)

	g, ctx := errgroup.WithContext(context.Background())
	for _, cmd := range []Cmd{first, second} {
		g.Go(func() error {
			c.Run(ctx, cmd)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Empty(t, c.Snapshot().Pending)
	assert.ElementsMatch(t, []statusWrite{
		{ID: "A", Status: models.StatusOnHold},
		{ID: "B", Status: models.StatusDone},
	}, remote.writes)
}

func TestFailedMoveReloadKeepsOtherPendingMove(t *testing.T) {
	// the remote does not store writes, so the reload reads B's old status
	remote := &fakeRemote{requests: seed(), failIDs: map[string]bool{"A": true}}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "A"})
	moveA := c.Dispatch(Drop{Column: models.StatusOnHold})
	c.Dispatch(DragStart{RequestID: "B"})
	moveB := c.Dispatch(Drop{Column: models.StatusDone})

	c.Run(context.Background(), moveA)

	assert.Equal(t, []string{"A(new)", "C(done)", "B(done)"}, layout(c.Snapshot().Requests))
	assert.True(t, c.IsPending("B"))
	stateA, _ := c.MoveState("A")
	assert.Equal(t, MoveRolledBack, stateA)

	c.Run(context.Background(), moveB)

	b, ok := c.Find("B")
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, b.Status)
	stateB, _ := c.MoveState("B")
	assert.Equal(t, MoveConfirmed, stateB)
}

func TestManualReloadKeepsPendingMoveInPlace(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	c, _ := loaded(t, remote)

	c.Dispatch(DragStart{RequestID: "B"})
	move := c.Dispatch(Drop{Column: models.StatusNew, BeforeID: "A"})
	c.Run(context.Background(), c.Dispatch(ReloadRequested{}))

	assert.Equal(t, []string{"B(new)", "A(new)", "C(done)"}, layout(c.Snapshot().Requests))

	c.Run(context.Background(), move)
	assert.Equal(t, []string{"B(new)", "A(new)", "C(done)"}, layout(c.Snapshot().Requests))
}

func TestNotifierMayCallBackIntoCoordinator(t *testing.T) {
	remote := &fakeRemote{requests: seed()}
	var c *Coordinator
	var seenPending []bool
	c = NewCoordinator(remote, nil, WithNotifier(NotifierFunc(func(Level, string) {
		seenPending = append(seenPending, c.IsPending("A"))
		_ = c.Snapshot()
	})))
	c.Run(context.Background(), c.Load())

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Dispatch(DragStart{RequestID: "A"})
		c.Run(context.Background(), c.Dispatch(Drop{Column: models.StatusDone}))
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier callback deadlocked")
	}
	assert.Equal(t, []bool{false}, seenPending)
}

func TestRun_NilCommand(t *testing.T) {
	c := NewCoordinator(&fakeRemote{}, nil)
	c.Run(context.Background(), nil)
	assert.Equal(t, PhaseIdle, c.Phase())
}
