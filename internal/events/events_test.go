package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishJSONReachesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var got BookingEventPayload
	calls := 0
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		calls++
		return json.Unmarshal(e.Payload, &got)
	})

	payload := BookingEventPayload{
		BookingID: "42",
		GuestName: "Test Guest",
		Date:      "2026-03-01",
		Time:      "19:00",
		PartySize: 4,
		Status:    "confirmed",
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	assert.Equal(t, 1, calls)
	assert.Equal(t, payload, got)
}

func TestPublishOnlyMatchingType(t *testing.T) {
	bus := NewEventBus()

	created, deleted := 0, 0
	bus.Subscribe(EventBookingCreated, func(*Event) error { created++; return nil })
	bus.Subscribe(EventBookingDeleted, func(*Event) error { deleted++; return nil })

	require.NoError(t, bus.PublishJSON(EventBookingDeleted, BookingEventPayload{BookingID: "1"}))

	assert.Zero(t, created)
	assert.Equal(t, 1, deleted)
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, nil))
}
