package notifications

import "time"

// DefaultTTL is how long a notification stays on screen
const DefaultTTL = 4 * time.Second

// Notification is one message with a severity and an expiry
type Notification struct {
	ID        int
	Severity  Severity
	Message   string
	ExpiresAt time.Time
}

// State keeps the visible notifications, oldest first
type State struct {
	nextID int
	items  []Notification
	ttl    time.Duration
}

// NewState creates an empty State. A ttl of zero means DefaultTTL.
func NewState(ttl time.Duration) *State {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &State{ttl: ttl}
}

// TTL returns the lifetime of new notifications
func (s *State) TTL() time.Duration {
	return s.ttl
}

// Add appends a notification and returns its id
func (s *State) Add(sev Severity, message string, now time.Time) int {
	s.nextID++
	s.items = append(s.items, Notification{
		ID:        s.nextID,
		Severity:  sev,
		Message:   message,
		ExpiresAt: now.Add(s.ttl),
	})
	return s.nextID
}

// Expire drops every notification whose time has passed
func (s *State) Expire(now time.Time) {
	kept := s.items[:0]
	for _, n := range s.items {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	s.items = kept
}

// All returns the visible notifications
func (s *State) All() []Notification {
	return s.items
}

// Latest returns the newest notification, if any
func (s *State) Latest() (Notification, bool) {
	if len(s.items) == 0 {
		return Notification{}, false
	}
	return s.items[len(s.items)-1], true
}
