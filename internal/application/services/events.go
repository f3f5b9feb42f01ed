package services

import (
	"context"
	"time"

	"github.com/nohlan/stayhub/internal/domain/providers"
)

// publishEvent emits a lifecycle event after a successful commit.
// Publishing is best-effort: a nil bus or a failed publish never fails
// the domain operation (the bus logs its own errors).
func publishEvent(ctx context.Context, bus providers.EventBus, entityKind, eventType, entityID, actorID string) {
	if bus == nil {
		return
	}
	_ = bus.Publish(ctx, providers.EventChannelListings, &providers.Event{
		Type:       eventType,
		EntityKind: entityKind,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})
}
