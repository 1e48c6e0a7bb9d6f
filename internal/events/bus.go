// Package events fans change notifications out to in-process subscribers
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrBusClosed is returned by Publish after Close
var ErrBusClosed = errors.New("event bus closed")

const defaultBufferSize = 32

// Bus is an in-process broadcaster. Publish never blocks: a subscriber whose
// buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	closed bool
	buffer int

	sequence  atomic.Int64
	published atomic.Int64
	dropped   atomic.Int64
}

type subscriber struct {
	ch   chan Event
	done chan struct{}
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.ch)
		close(s.done)
	})
}

// NewBus creates a bus whose subscribers buffer up to buffer events.
// A non-positive buffer uses the default.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultBufferSize
	}
	return &Bus{subs: make(map[*subscriber]struct{}), buffer: buffer}
}

// Publish stamps the event and delivers it to every subscriber
func (b *Bus) Publish(event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	event.SequenceID = b.sequence.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	b.published.Add(1)

	for s := range b.subs {
		// Non-blocking send - if subscriber is slow, skip
		select {
		case s.ch <- event:
		default:
			b.dropped.Add(1)
			slog.Warn("subscriber queue full, event dropped", "event_type", event.Type, "sequence_id", event.SequenceID)
		}
	}
	return nil
}

// Subscribe returns a channel of events that is closed when ctx ends or the
// bus closes
func (b *Bus) Subscribe(ctx context.Context) <-chan Event {
	s := &subscriber{ch: make(chan Event, b.buffer), done: make(chan struct{})}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		s.close()
		return s.ch
	}
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.remove(s)
		case <-s.done:
		}
	}()
	return s.ch
}

func (b *Bus) remove(s *subscriber) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
	s.close()
}

// Close ends every subscription. Publishing afterwards fails.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.close()
	}
}

// Stats is a snapshot of bus counters
type Stats struct {
	Subscribers int
	Published   int64
	Dropped     int64
}

// Stats returns the current counters
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{Subscribers: n, Published: b.published.Load(), Dropped: b.dropped.Load()}
}
