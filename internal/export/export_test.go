package export

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"tavola/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
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
	return m.Called(ctx, booking).Error(0)
}

func (m *mockStore) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockStore) UpdateBookingStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockStore) DeleteBooking(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
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

func TestBookingsToExcel(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	logger := zerolog.New(io.Discard)

	store := new(mockStore)
	bookings := []models.Booking{
		{
			ID: "1", Date: "2026-09-01", Time: "19:00", PartySize: 2,
			GuestName: "Sofia Rossi", GuestPhone: "+44 7700 900123",
			Status: models.StatusConfirmed, Source: models.SourceWebsite,
			CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", Date: "2026-09-02", Time: "13:30", PartySize: 6,
			GuestName: "James Chen", GuestPhone: "+44 7700 900456",
			Occasion: "Birthday", Status: models.StatusCancelled,
			Source:    models.SourcePhone,
			CreatedAt: time.Date(2026, 8, 21, 11, 0, 0, 0, time.UTC),
		},
	}
	store.On("ListBookingsByDateRange", ctx, "2026-09-01", "2026-09-07").Return(bookings, nil).Once()

	exporter := NewExporter(store, dir, &logger)
	path, err := exporter.BookingsToExcel(ctx, "2026-09-01", "2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bookings_2026-09-01_to_2026-09-07.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Bookings 2026-09-01 to 2026-09-07", title)

	header, _ := f.GetCellValue(sheetName, "A2")
	assert.Equal(t, "ID", header)

	guest, _ := f.GetCellValue(sheetName, "E3")
	assert.Equal(t, "Sofia Rossi", guest)

	status, _ := f.GetCellValue(sheetName, "J4")
	assert.Equal(t, models.StatusCancelled, status)

	store.AssertExpectations(t)
}

func TestBookingsToExcelStoreError(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	store := new(mockStore)
	store.On("ListBookingsByDateRange", ctx, "2026-09-01", "2026-09-07").
		Return(nil, errors.New("store down")).Once()

	exporter := NewExporter(store, t.TempDir(), &logger)
	_, err := exporter.BookingsToExcel(ctx, "2026-09-01", "2026-09-07")
	assert.Error(t, err)
}
