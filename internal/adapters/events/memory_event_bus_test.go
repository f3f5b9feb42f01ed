package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nohlan/stayhub/internal/adapters/events"
	"github.com/nohlan/stayhub/internal/domain/providers"
)

func TestMemoryEventBus_PublishSubscribe(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, providers.EventChannelListings)
	require.NoError(t, err)

	event := &providers.Event{
		Type:       providers.EventCreated,
		EntityKind: "place",
		EntityID:   "place-1",
		ActorID:    "user-1",
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, bus.Publish(ctx, providers.EventChannelListings, event))

	select {
	case got := <-ch:
		assert.Equal(t, providers.EventCreated, got.Type)
		assert.Equal(t, "place-1", got.EntityID)
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}
}

func TestMemoryEventBus_ChannelsAreIsolated(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx := context.Background()
	ch, err := bus.Subscribe(ctx, providers.PlaceChannel("place-1"))
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, providers.PlaceChannel("place-2"), &providers.Event{
		Type: providers.EventUpdated, EntityKind: "place", EntityID: "place-2",
	}))

	select {
	case got := <-ch:
		t.Fatalf("unexpected event: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryEventBus_CancelledSubscriberIsRemoved(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, providers.EventChannelListings)
	require.NoError(t, err)

	cancel()

	// The subscriber channel is closed once the context unwinds.
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
