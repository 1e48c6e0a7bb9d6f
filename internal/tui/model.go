// Package tui is the keyboard-driven kanban board. Card moves go through
// the kanban coordinator: the board updates at once and confirms in the
// background.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/salesboard/internal/config"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/tui/notifications"
)

// WatchFunc opens a stream of change events. The in-process bus and the
// remote SSE client both fit.
type WatchFunc func(ctx context.Context) (<-chan events.Event, error)

// Options configures a Model
type Options struct {
	Keys  config.KeyMappings
	Watch WatchFunc
	// NotificationTTL defaults to notifications.DefaultTTL
	NotificationTTL time.Duration
	// Now is the clock for notification expiry; defaults to time.Now
	Now func() time.Time
}

// noteSink collects coordinator notifications until Update drains them
type noteSink struct {
	mu    sync.Mutex
	queue []queuedNote
}

type queuedNote struct {
	level   kanban.Level
	message string
}

func (s *noteSink) Notify(level kanban.Level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, queuedNote{level: level, message: message})
}

func (s *noteSink) drain() []queuedNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.queue
	s.queue = nil
	return out
}

// Model is the bubbletea model of the board
type Model struct {
	ctx   context.Context
	coord *kanban.Coordinator
	sink  *noteSink
	watch WatchFunc
	now   func() time.Time

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	notes    *notifications.State
	showHelp bool

	width, height int

	// cursor
	col, row int
	// drop target while dragging; dropAt indexes the target column's
	// cards with the dragged one left out
	targetCol, dropAt int

	loaded    bool
	reloading bool

	// stale marks an external change seen while a move was pending
	stale   bool
	changes <-chan events.Event
}

// Sink returns the kanban.Notifier the coordinator must be built with so
// its messages reach the status line
func Sink() kanban.Notifier {
	return &noteSink{}
}

// New creates the board model. notifier must be the value passed to the
// coordinator through kanban.WithNotifier, obtained from Sink.
func New(ctx context.Context, coord *kanban.Coordinator, notifier kanban.Notifier, opts Options) *Model {
	sink, ok := notifier.(*noteSink)
	if !ok {
		sink = &noteSink{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle

	h := help.New()
	h.ShowAll = false

	return &Model{
		ctx:     ctx,
		coord:   coord,
		sink:    sink,
		watch:   opts.Watch,
		now:     opts.Now,
		keys:    NewKeyMap(withDefaults(opts.Keys)),
		help:    h,
		spinner: sp,
		notes:   notifications.NewState(opts.NotificationTTL),
		dropAt:  -1,
	}
}

func withDefaults(km config.KeyMappings) config.KeyMappings {
	d := config.DefaultKeyMappings()
	if km == (config.KeyMappings{}) {
		return d
	}
	return km
}

// Init loads the board, starts the spinner and opens the change stream
func (m *Model) Init() tea.Cmd {
	m.reloading = true
	cmds := []tea.Cmd{
		m.lift(m.coord.Load()),
		m.spinner.Tick,
		tea.SetWindowTitle("Salesboard"),
	}
	if m.watch != nil {
		cmds = append(cmds, m.openWatch())
	}
	return tea.Batch(cmds...)
}
