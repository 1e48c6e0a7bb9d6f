// Package kanban coordinates optimistic card moves on a board.
//
// The Coordinator is a plain state machine: callers feed it events through
// Dispatch and get back an optional Cmd. A Cmd performs the only blocking
// work (a remote status write or a bulk reload) and returns the event that
// reports its outcome, which the caller dispatches in turn. A terminal UI
// wraps each Cmd as an asynchronous command; a CLI runs the chain with Run.
package kanban

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/telemetry"
	"github.com/thenoetrevino/salesboard/internal/workflow"
)

// Remote is the authoritative store behind the board
type Remote interface {
	ListRequests(ctx context.Context) ([]models.Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status models.Status) error
}

// Cmd performs one suspension point and returns the resulting event.
// A nil Cmd means there is nothing to do.
type Cmd func(ctx context.Context) Event

// Phase is the drag phase of the board
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

func (p Phase) String() string {
	if p == PhaseDragging {
		return "dragging"
	}
	return "idle"
}

// MoveState tracks one request's move after it was dropped
type MoveState int

const (
	MoveDropped MoveState = iota + 1
	MoveConfirming
	MoveConfirmed
	MoveRolledBack
)

func (s MoveState) String() string {
	switch s {
	case MoveDropped:
		return "dropped"
	case MoveConfirming:
		return "confirming"
	case MoveConfirmed:
		return "confirmed"
	case MoveRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Preview is the drop target currently under the dragged card
type Preview struct {
	Column   models.Status
	BeforeID string
}

// Snapshot is a consistent copy of the coordinator state for rendering
type Snapshot struct {
	Phase    Phase
	DragID   string
	Preview  *Preview
	Pending  []string
	Columns  []board.Column
	Requests []models.Request
}

// pendingMove is a dropped card waiting for its remote write. The target is
// kept so a reload that lands before the write can show the move again.
type pendingMove struct {
	state    MoveState
	status   models.Status
	beforeID string
}

type queuedNote struct {
	level   Level
	message string
}

// Coordinator owns a board and applies moves to it optimistically
type Coordinator struct {
	mu sync.Mutex

	board    *board.Board
	remote   Remote
	notifier Notifier
	logger   *slog.Logger
	meter    metric.Meter
	guard    bool

	phase   Phase
	dragID  string
	preview *Preview

	// pending holds requests whose remote write has not resolved yet
	pending map[string]pendingMove
	// settled remembers the final state of the last move per request
	settled map[string]MoveState
	// outbox collects notifications raised under mu; Dispatch sends them
	// after unlocking so a Notifier may call back into the coordinator
	outbox []queuedNote

	moves   metric.Int64Counter
	reloads metric.Int64Counter
}

// NewCoordinator creates a coordinator over b backed by remote
func NewCoordinator(remote Remote, b *board.Board, opts ...Option) *Coordinator {
	if b == nil {
		b = board.New(nil)
	}
	c := &Coordinator{
		board:    b,
		remote:   remote,
		notifier: discardNotifier{},
		logger:   slog.Default(),
		meter:    telemetry.Meter("github.com/thenoetrevino/salesboard/kanban"),
		pending:  make(map[string]pendingMove),
		settled:  make(map[string]MoveState),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.moves, _ = c.meter.Int64Counter("salesboard.board.moves",
		metric.WithDescription("Card moves by outcome"),
	)
	c.reloads, _ = c.meter.Int64Counter("salesboard.board.reloads",
		metric.WithDescription("Bulk reloads of the board"),
	)
	return c
}

// Load returns the command that fetches the initial board
func (c *Coordinator) Load() Cmd {
	return c.Dispatch(ReloadRequested{})
}

// Dispatch applies ev and returns the follow-up command, if any.
// Notifications raised by ev are delivered before Dispatch returns, outside
// the coordinator lock.
func (c *Coordinator) Dispatch(ev Event) Cmd {
	c.mu.Lock()
	cmd := c.apply(ev)
	notes := c.outbox
	c.outbox = nil
	c.mu.Unlock()

	for _, n := range notes {
		c.notifier.Notify(n.level, n.message)
	}
	return cmd
}

func (c *Coordinator) notify(level Level, message string) {
	c.outbox = append(c.outbox, queuedNote{level: level, message: message})
}

func (c *Coordinator) apply(ev Event) Cmd {
	switch e := ev.(type) {
	case DragStart:
		c.onDragStart(e)
	case DragOver:
		if c.phase == PhaseDragging {
			c.preview = &Preview{Column: e.Column, BeforeID: e.BeforeID}
		}
	case DragLeave:
		c.preview = nil
	case DragEnd:
		c.resetDrag()
	case Drop:
		return c.onDrop(e)
	case ConfirmSucceeded:
		c.onConfirmSucceeded(e)
	case ConfirmFailed:
		return c.onConfirmFailed(e)
	case ReloadRequested:
		return c.reloadCmd()
	case Reloaded:
		c.onReloaded(e)
	}
	return nil
}

// Run executes cmd and every command it leads to until the chain ends
func (c *Coordinator) Run(ctx context.Context, cmd Cmd) {
	for cmd != nil {
		ev := cmd(ctx)
		if ev == nil {
			return
		}
		cmd = c.Dispatch(ev)
	}
}

func (c *Coordinator) onDragStart(e DragStart) {
	if _, busy := c.pending[e.RequestID]; busy {
		c.logger.Debug("drag ignored, move pending", "request_id", e.RequestID)
		return
	}
	if _, ok := c.board.Find(e.RequestID); !ok {
		return
	}
	c.phase = PhaseDragging
	c.dragID = e.RequestID
	c.preview = nil
}

func (c *Coordinator) onDrop(e Drop) Cmd {
	id := c.dragID
	wasDragging := c.phase == PhaseDragging
	c.resetDrag()
	if !wasDragging {
		return nil
	}

	current, ok := c.board.Find(id)
	if !ok {
		c.logger.Debug("drop ignored, request no longer on board", "request_id", id)
		return nil
	}

	target := models.NormalizeStatus(string(e.Column))
	if c.guard && !workflow.CanTransition(current.Status, target) {
		c.notify(LevelWarning, fmt.Sprintf("Cannot move from %s to %s", current.Status.Label(), target.Label()))
		c.logger.Info("drop rejected by transition guard",
			"request_id", id, "from", current.Status, "to", target)
		return nil
	}

	c.board.Move(id, target, e.BeforeID)
	c.pending[id] = pendingMove{state: MoveDropped, status: target, beforeID: e.BeforeID}
	delete(c.settled, id)
	c.record(MoveDropped)
	c.logger.Info("request dropped", "request_id", id, "from", current.Status, "to", target)

	return c.confirmCmd(id, target)
}

func (c *Coordinator) confirmCmd(id string, status models.Status) Cmd {
	remote := c.remote
	return func(ctx context.Context) Event {
		c.mu.Lock()
		if p, ok := c.pending[id]; ok {
			p.state = MoveConfirming
			c.pending[id] = p
		}
		c.mu.Unlock()

		if err := remote.UpdateRequestStatus(ctx, id, status); err != nil {
			return ConfirmFailed{RequestID: id, Status: status, Err: err}
		}
		return ConfirmSucceeded{RequestID: id, Status: status}
	}
}

func (c *Coordinator) onConfirmSucceeded(e ConfirmSucceeded) {
	delete(c.pending, e.RequestID)
	c.settled[e.RequestID] = MoveConfirmed
	c.record(MoveConfirmed)
	c.logger.Info("move confirmed", "request_id", e.RequestID, "status", e.Status)
	c.notify(LevelInfo, "Moved to "+e.Status.Label())
}

func (c *Coordinator) onConfirmFailed(e ConfirmFailed) Cmd {
	delete(c.pending, e.RequestID)
	c.settled[e.RequestID] = MoveRolledBack
	c.record(MoveRolledBack)
	c.logger.Error("move failed, reloading board", "request_id", e.RequestID, "status", e.Status, "error", e.Err)
	c.notify(LevelError, "Failed to update status, reloading")
	return c.reloadCmd()
}

func (c *Coordinator) reloadCmd() Cmd {
	remote := c.remote
	return func(ctx context.Context) Event {
		requests, err := remote.ListRequests(ctx)
		return Reloaded{Requests: requests, Err: err}
	}
}

func (c *Coordinator) onReloaded(e Reloaded) {
	c.reloads.Add(context.Background(), 1)
	if e.Err != nil {
		c.logger.Error("failed to load requests", "error", e.Err)
		c.notify(LevelError, "Failed to load requests")
		c.board.Replace(nil)
		return
	}
	c.board.Replace(e.Requests)

	// The list may predate writes still in flight; keep those cards where
	// they were dropped until their confirm resolves.
	ids := make([]string, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := c.pending[id]
		c.board.Move(id, p.status, p.beforeID)
	}
}

func (c *Coordinator) resetDrag() {
	c.phase = PhaseIdle
	c.dragID = ""
	c.preview = nil
}

func (c *Coordinator) record(state MoveState) {
	c.moves.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", state.String())))
}

// Snapshot returns a copy of the state safe to render from another goroutine
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Phase:    c.phase,
		DragID:   c.dragID,
		Columns:  c.board.Grouped(),
		Requests: append([]models.Request(nil), c.board.Requests()...),
	}
	if c.preview != nil {
		p := *c.preview
		s.Preview = &p
	}
	for id := range c.pending {
		s.Pending = append(s.Pending, id)
	}
	sort.Strings(s.Pending)
	return s
}

// IsPending reports whether id has a remote write in flight
func (c *Coordinator) IsPending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// MoveState returns the state of the latest move of id
func (c *Coordinator) MoveState(id string) (MoveState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pending[id]; ok {
		return p.state, true
	}
	s, ok := c.settled[id]
	return s, ok
}

// Phase returns the current drag phase
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Find returns the request with id as currently shown
func (c *Coordinator) Find(id string) (models.Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Find(id)
}
