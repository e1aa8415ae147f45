package eventbus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/flowforge/flowforge/pkg/channels/gochannel"
	"github.com/flowforge/flowforge/pkg/eventbus"
	"github.com/flowforge/flowforge/pkg/events"
	"github.com/flowforge/flowforge/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	t.Cleanup(func() {
		err := bus.Close()
		require.NoError(t, err)
	})

	return bus
}

func baseEvent(eventType events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:           "event-1",
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		OwnerID:      "user-1",
		AutomationID: "automation-1",
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	t.Parallel()

	bus := setupBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestWatermillEventBus_DeliversDecodedLifecycleEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bus := setupBus(t)

	var (
		mu       sync.Mutex
		received = make(map[events.EventType]any)
	)

	record := func(eventType events.EventType) eventbus.EventHandler {
		return func(_ context.Context, event any) error {
			mu.Lock()
			defer mu.Unlock()

			received[eventType] = event

			return nil
		}
	}

	for _, eventType := range []events.EventType{
		events.AutomationCreatedEvent,
		events.AutomationToggledEvent,
		events.AutomationDeletedEvent,
		events.AutomationMarkedErrorEvent,
	} {
		require.NoError(t, bus.Handle(eventType, record(eventType)))
	}

	require.NoError(t, bus.Subscribe(ctx))

	published := []eventbus.Event{
		events.AutomationCreated{
			BaseEvent: baseEvent(events.AutomationCreatedEvent),
			Name:      "Lead sync",
			Category:  "sales",
		},
		events.AutomationToggled{
			BaseEvent: baseEvent(events.AutomationToggledEvent),
			Status:    models.AutomationStatusPaused,
		},
		events.AutomationDeleted{
			BaseEvent: baseEvent(events.AutomationDeletedEvent),
		},
		events.AutomationMarkedError{
			BaseEvent: baseEvent(events.AutomationMarkedErrorEvent),
			Reason:    "downstream timeout",
		},
	}

	for _, event := range published {
		require.NoError(t, bus.Publish(ctx, bus.GenerateID(), event))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(received) == len(published)
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	created, ok := received[events.AutomationCreatedEvent].(*events.AutomationCreated)
	require.True(t, ok)
	assert.Equal(t, "Lead sync", created.Name)
	assert.Equal(t, "user-1", created.OwnerID)

	toggled, ok := received[events.AutomationToggledEvent].(*events.AutomationToggled)
	require.True(t, ok)
	assert.Equal(t, models.AutomationStatusPaused, toggled.Status)

	deleted, ok := received[events.AutomationDeletedEvent].(*events.AutomationDeleted)
	require.True(t, ok)
	assert.Equal(t, "automation-1", deleted.AutomationID)

	marked, ok := received[events.AutomationMarkedErrorEvent].(*events.AutomationMarkedError)
	require.True(t, ok)
	assert.Equal(t, "downstream timeout", marked.Reason)
}

func TestWatermillEventBus_UnhandledEventTypesAreSkipped(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bus := setupBus(t)

	var (
		mu       sync.Mutex
		received []any
	)

	require.NoError(t, bus.Handle(events.AutomationDeletedEvent, func(_ context.Context, event any) error {
		mu.Lock()
		defer mu.Unlock()

		received = append(received, event)

		return nil
	}))

	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for created events; only the deleted event may
	// arrive.
	require.NoError(t, bus.Publish(ctx, bus.GenerateID(), events.AutomationCreated{
		BaseEvent: baseEvent(events.AutomationCreatedEvent),
		Name:      "Lead sync",
	}))
	require.NoError(t, bus.Publish(ctx, bus.GenerateID(), events.AutomationDeleted{
		BaseEvent: baseEvent(events.AutomationDeletedEvent),
	}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(received) == 1
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	_, ok := received[0].(*events.AutomationDeleted)
	assert.True(t, ok)
}
