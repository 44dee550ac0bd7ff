package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() Booking {
	return Booking{
		Date:       "2026-03-01",
		Time:       "19:00",
		PartySize:  4,
		GuestName:  "Test Guest",
		GuestPhone: "+44 7700 900000",
		Status:     StatusConfirmed,
	}
}

func TestEffectiveStatusDefaultsToConfirmed(t *testing.T) {
	b := Booking{}
	assert.Equal(t, StatusConfirmed, b.EffectiveStatus())

	b.Status = StatusNoShow
	assert.Equal(t, StatusNoShow, b.EffectiveStatus())
}

func TestBookingValidate(t *testing.T) {
	b := validBooking()
	require.NoError(t, b.Validate())

	tests := []struct {
		name   string
		mutate func(*Booking)
	}{
		{"missing name", func(b *Booking) { b.GuestName = "  " }},
		{"missing phone", func(b *Booking) { b.GuestPhone = "" }},
		{"zero party size", func(b *Booking) { b.PartySize = 0 }},
		{"bad date", func(b *Booking) { b.Date = "01/03/2026" }},
		{"bad time", func(b *Booking) { b.Time = "7pm" }},
		{"bad status", func(b *Booking) { b.Status = "pending" }},
		{"bad occasion", func(b *Booking) { b.Occasion = "Wedding" }},
		{"bad source", func(b *Booking) { b.Source = "fax" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := validBooking()
			tt.mutate(&bad)
			assert.Error(t, bad.Validate())
		})
	}
}

func TestBookingHour(t *testing.T) {
	b := Booking{Time: "19:47"}
	assert.Equal(t, 19, b.Hour())

	b.Time = "09:00"
	assert.Equal(t, 9, b.Hour())

	b.Time = "bad"
	assert.Equal(t, -1, b.Hour())
}

func TestConfirmationRef(t *testing.T) {
	now := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	ref := ConfirmationRef("a1b2c3d4-e5f6", now)
	assert.Equal(t, "BT-A1B2C3D4", ref)

	ref = ConfirmationRef("42", now)
	assert.Equal(t, "BT-42", ref)

	fallback := ConfirmationRef("", now)
	assert.Contains(t, fallback, "BT-")
	assert.Greater(t, len(fallback), len("BT-"))
}

func TestDensityFor(t *testing.T) {
	assert.Equal(t, DensityLow, DensityFor(0))
	assert.Equal(t, DensityLow, DensityFor(2))
	assert.Equal(t, DensityMedium, DensityFor(3))
	assert.Equal(t, DensityMedium, DensityFor(4))
	assert.Equal(t, DensityHigh, DensityFor(5))
	assert.Equal(t, DensityHigh, DensityFor(12))
}

func TestDemoBookingsAnchoredToDay(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	demo := DemoBookings(now)
	require.Len(t, demo, 10)

	today := "2026-02-10"
	var todayCount int
	for _, b := range demo {
		require.NoError(t, b.Validate())
		if b.Date == today {
			todayCount++
		}
	}
	assert.Equal(t, 5, todayCount)
}
