package events

import "log/slog"

// Send publishes an event if the publisher is available.
// Errors are logged but not returned (fire-and-forget pattern).
func Send(pub EventPublisher, eventType EventType, requestID string) {
	if pub == nil {
		return
	}
	if err := pub.Publish(Event{Type: eventType, RequestID: requestID}); err != nil {
		slog.Warn("event publish failed",
			"event_type", eventType,
			"request_id", requestID,
			"error", err)
	}
}

// SendRestaurant publishes a restaurant change, fire-and-forget like Send
func SendRestaurant(pub EventPublisher, restaurantID string) {
	if pub == nil {
		return
	}
	if err := pub.Publish(Event{Type: EventRestaurantChanged, RestaurantID: restaurantID}); err != nil {
		slog.Warn("event publish failed",
			"event_type", EventRestaurantChanged,
			"restaurant_id", restaurantID,
			"error", err)
	}
}
