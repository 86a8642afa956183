package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/events"
)

func Test_Dispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventVehicleEntered, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:           "evt-1",
		Type:         events.EventVehicleEntered,
		Registration: "ABCDEF",
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "evt-1", received[0].ID)
}

func Test_Dispatcher_IgnoresOtherEventTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(events.EventVehicleExited, func(_ context.Context, _ events.Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventVehicleEntered})

	require.NoError(t, err)
	assert.False(t, called)
}

func Test_Dispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	dispatcher.Subscribe(events.EventSpotReleased, func(_ context.Context, _ events.Event) error {
		return assert.AnError
	})
	secondCalled := false
	dispatcher.Subscribe(events.EventSpotReleased, func(_ context.Context, _ events.Event) error {
		secondCalled = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventSpotReleased})

	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, secondCalled)
}
