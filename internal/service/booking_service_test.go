package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"tavola/internal/dashboard"
	"tavola/internal/database"
	"tavola/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockStore) ListBookingsByDateRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockStore) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockStore) UpdateBookingStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockStore) DeleteBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *mockStore) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Testimonial), args.Error(1)
}

type mockSyncWorker struct {
	mock.Mock
}

func (m *mockSyncWorker) EnqueueUpsert(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockSyncWorker) EnqueueStatus(ctx context.Context, bookingID, status string) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *mockSyncWorker) EnqueueDelete(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func newTestService(store *mockStore) (*BookingService, *dashboard.State) {
	state := dashboard.New()
	logger := zerolog.New(io.Discard)
	svc := NewBookingService(store, state, nil, nil, 12, 365, &logger)
	return svc, state
}

func validReservation() ReservationRequest {
	return ReservationRequest{
		GuestName:  "Sofia Rossi",
		GuestEmail: "sofia@example.com",
		GuestPhone: "+44 7700 900123",
		Date:       time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		Time:       "19:30",
		PartySize:  2,
		Occasion:   "Anniversary",
	}
}

func TestLoadBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("LiveData", func(t *testing.T) {
		store := new(mockStore)
		svc, state := newTestService(store)

		live := []models.Booking{{ID: "1", Date: "2026-09-01", Time: "19:00", PartySize: 2, GuestName: "A", GuestPhone: "1"}}
		store.On("ListBookings", ctx).Return(live, nil).Once()

		result := svc.LoadBookings(ctx)
		assert.Equal(t, SourceLive, result.Source)
		assert.Len(t, result.Bookings, 1)
		assert.Equal(t, 1, state.Len())
		store.AssertExpectations(t)
	})

	t.Run("FallbackOnError", func(t *testing.T) {
		store := new(mockStore)
		svc, state := newTestService(store)

		store.On("ListBookings", ctx).Return(nil, errors.New("store down")).Once()

		result := svc.LoadBookings(ctx)
		assert.Equal(t, SourceFallback, result.Source)
		assert.Len(t, result.Bookings, 10)
		assert.Equal(t, 10, state.Len())
	})

	t.Run("FallbackOnEmpty", func(t *testing.T) {
		store := new(mockStore)
		svc, _ := newTestService(store)

		store.On("ListBookings", ctx).Return([]models.Booking{}, nil).Once()

		result := svc.LoadBookings(ctx)
		assert.Equal(t, SourceFallback, result.Source)
		assert.Len(t, result.Bookings, 10)
	})
}

func TestCreateGuestBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		svc, state := newTestService(store)

		store.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Booking).ID = "42"
			}).Return(nil).Once()

		booking, ref, err := svc.CreateGuestBooking(ctx, validReservation())
		require.NoError(t, err)
		assert.Equal(t, "42", booking.ID)
		assert.Equal(t, "BT-42", ref)
		assert.Equal(t, models.StatusConfirmed, booking.Status)
		assert.Equal(t, models.SourceWebsite, booking.Source)

		got, ok := state.Get("42")
		require.True(t, ok)
		assert.Equal(t, "Sofia Rossi", got.GuestName)
		store.AssertExpectations(t)
	})

	t.Run("StoreFailureKeepsLocalRecord", func(t *testing.T) {
		store := new(mockStore)
		svc, state := newTestService(store)

		store.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Return(errors.New("store down")).Once()

		booking, ref, err := svc.CreateGuestBooking(ctx, validReservation())
		require.NoError(t, err)
		assert.Len(t, booking.ID, 36) // uuid
		assert.NotEmpty(t, ref)

		_, ok := state.Get(booking.ID)
		assert.True(t, ok)
	})

	t.Run("Validation", func(t *testing.T) {
		store := new(mockStore)
		svc, _ := newTestService(store)

		cases := []struct {
			name   string
			mutate func(*ReservationRequest)
		}{
			{"MissingName", func(r *ReservationRequest) { r.GuestName = "  " }},
			{"BadEmail", func(r *ReservationRequest) { r.GuestEmail = "not-an-email" }},
			{"MissingPhone", func(r *ReservationRequest) { r.GuestPhone = "" }},
			{"ZeroParty", func(r *ReservationRequest) { r.PartySize = 0 }},
			{"PartyTooLarge", func(r *ReservationRequest) { r.PartySize = 13 }},
			{"BadDate", func(r *ReservationRequest) { r.Date = "tomorrow" }},
			{"PastDate", func(r *ReservationRequest) { r.Date = "2020-01-01" }},
			{"BadTime", func(r *ReservationRequest) { r.Time = "7pm" }},
			{"BadOccasion", func(r *ReservationRequest) { r.Occasion = "Wedding" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validReservation()
				tc.mutate(&req)

				_, _, err := svc.CreateGuestBooking(ctx, req)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
		store.AssertNotCalled(t, "CreateBooking")
	})
}

func TestCreateManualBooking(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	svc, state := newTestService(store)

	t.Run("DefaultsSourceAndStatus", func(t *testing.T) {
		store.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Booking).ID = "7"
			}).Return(nil).Once()

		booking := models.Booking{
			Date: "2026-09-10", Time: "13:00", PartySize: 4,
			GuestName: "Walk In", GuestPhone: "+44 20 7946 0000",
		}
		require.NoError(t, svc.CreateManualBooking(ctx, &booking))
		assert.Equal(t, models.SourceAdmin, booking.Source)
		assert.Equal(t, models.StatusConfirmed, booking.Status)

		_, ok := state.Get("7")
		assert.True(t, ok)
	})

	t.Run("EmailNotChecked", func(t *testing.T) {
		store.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Booking).ID = "8"
			}).Return(nil).Once()

		booking := models.Booking{
			Date: "2026-09-10", Time: "13:30", PartySize: 2,
			GuestName: "Phone Guest", GuestPhone: "+44 20 7946 0001",
			GuestEmail: "left as dictated", Source: models.SourcePhone,
		}
		assert.NoError(t, svc.CreateManualBooking(ctx, &booking))
	})

	t.Run("RejectsMissingPhone", func(t *testing.T) {
		booking := models.Booking{
			Date: "2026-09-10", Time: "14:00", PartySize: 2, GuestName: "No Phone",
		}
		err := svc.CreateManualBooking(ctx, &booking)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	seed := func() (*BookingService, *dashboard.State, *mockStore) {
		store := new(mockStore)
		svc, state := newTestService(store)
		state.Replace([]models.Booking{
			{ID: "5", Date: "2026-09-01", Time: "19:00", PartySize: 2, GuestName: "G", GuestPhone: "1", Status: models.StatusConfirmed},
		})
		return svc, state, store
	}

	t.Run("TransitionApplied", func(t *testing.T) {
		svc, state, store := seed()
		store.On("UpdateBookingStatus", ctx, "5", models.StatusCompleted).Return(nil).Once()

		updated, err := svc.SetStatus(ctx, "5", models.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)

		got, _ := state.Get("5")
		assert.Equal(t, models.StatusCompleted, got.Status)
		store.AssertExpectations(t)
	})

	t.Run("StoreFailureStillPatchesState", func(t *testing.T) {
		svc, state, store := seed()
		store.On("UpdateBookingStatus", ctx, "5", models.StatusCancelled).
			Return(errors.New("store down")).Once()

		_, err := svc.SetStatus(ctx, "5", models.StatusCancelled)
		require.NoError(t, err)

		got, _ := state.Get("5")
		assert.Equal(t, models.StatusCancelled, got.Status)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		svc, _, _ := seed()
		_, err := svc.SetStatus(ctx, "5", "seated")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		svc, _, _ := seed()
		_, err := svc.SetStatus(ctx, "404", models.StatusCompleted)
		assert.Error(t, err)
	})
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	svc, state := newTestService(store)
	state.Replace([]models.Booking{
		{ID: "9", Date: "2026-09-01", Time: "19:00", PartySize: 2, GuestName: "Before", GuestPhone: "1"},
	})

	t.Run("Edits", func(t *testing.T) {
		edited := models.Booking{
			ID: "9", Date: "2026-09-02", Time: "20:00", PartySize: 6,
			GuestName: "After", GuestPhone: "1",
		}
		store.On("UpdateBooking", ctx, &edited).Return(nil).Once()

		require.NoError(t, svc.UpdateBooking(ctx, &edited))

		got, _ := state.Get("9")
		assert.Equal(t, "After", got.GuestName)
		assert.Equal(t, 6, got.PartySize)
		store.AssertExpectations(t)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		missing := models.Booking{
			ID: "404", Date: "2026-09-02", Time: "20:00", PartySize: 2,
			GuestName: "Ghost", GuestPhone: "1",
		}
		assert.Error(t, svc.UpdateBooking(ctx, &missing))
	})
}

func TestDeleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesFromStoreAndState", func(t *testing.T) {
		store := new(mockStore)
		svc, state := newTestService(store)
		state.Replace([]models.Booking{
			{ID: "3", Date: "2026-09-01", Time: "19:00", PartySize: 2, GuestName: "G", GuestPhone: "1"},
		})
		store.On("DeleteBooking", ctx, "3").Return(nil).Once()

		require.NoError(t, svc.DeleteBooking(ctx, "3"))
		assert.Equal(t, 0, state.Len())
		store.AssertExpectations(t)
	})

	t.Run("LocalOnlyRecordToleratesStoreMiss", func(t *testing.T) {
		store := new(mockStore)
		svc, state := newTestService(store)
		localID := "0b996c33-17f2-4b52-9c65-8e4fd2b30c6e"
		state.Replace([]models.Booking{
			{ID: localID, Date: "2026-09-01", Time: "19:00", PartySize: 2, GuestName: "G", GuestPhone: "1"},
		})
		store.On("DeleteBooking", ctx, localID).Return(database.ErrNotFound).Once()

		require.NoError(t, svc.DeleteBooking(ctx, localID))
		assert.Equal(t, 0, state.Len())
	})
}
