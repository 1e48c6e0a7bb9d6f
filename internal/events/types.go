package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventRequestChanged EventType = "request_changed"
	EventCommentChanged EventType = "comment_changed"

	// EventRestaurantChanged covers a restaurant, its BDRs and its comments
	EventRestaurantChanged EventType = "restaurant_changed"
)

// Event represents a change notification
type Event struct {
	Type         EventType `json:"type"`
	RequestID    string    `json:"request_id,omitempty"` // empty = any request
	RestaurantID string    `json:"restaurant_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	SequenceID   int64     `json:"sequence_id"` // Monotonically increasing sequence number for ordering
}

// TouchesBoard reports whether the request board shows what changed
func (e Event) TouchesBoard() bool {
	return e.Type != EventRestaurantChanged
}
