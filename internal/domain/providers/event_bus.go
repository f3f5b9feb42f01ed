package providers

import (
	"context"
	"time"
)

// Event is a lifecycle notification published after a successful commit.
type Event struct {
	Type       string    `json:"type"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventBus defines the interface for publishing and subscribing to
// entity lifecycle events. Publishing is best-effort: a failed publish
// never fails the domain operation that triggered it.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *Event) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *Event, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// Channel names for lifecycle events.
const (
	EventChannelListings    = "listings:events"
	EventChannelPlacePrefix = "place:"
)

// Event type constants.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// PlaceChannel returns the channel carrying events for one place.
func PlaceChannel(placeID string) string {
	return EventChannelPlacePrefix + placeID
}
