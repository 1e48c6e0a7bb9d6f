package events

import "context"

// EventPublisher is what writers depend on to announce changes
type EventPublisher interface {
	Publish(event Event) error
}

// EventSubscriber is what readers depend on to follow changes
type EventSubscriber interface {
	Subscribe(ctx context.Context) <-chan Event
}

// Compile-time verification that *Bus implements both sides
var (
	_ EventPublisher  = (*Bus)(nil)
	_ EventSubscriber = (*Bus)(nil)
)
