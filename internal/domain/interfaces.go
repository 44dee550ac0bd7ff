package domain

import (
	"context"
	"time"

	"tavola/internal/models"
)

// Store is the backing database holding bookings and public content.
type Store interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByDateRange(ctx context.Context, start, end string) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id, status string) error
	DeleteBooking(ctx context.Context, id string) error
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
}

// SessionRepository keeps admin session tokens and per-client rate counters.
type SessionRepository interface {
	SaveSession(ctx context.Context, token string, ttl time.Duration) error
	SessionExists(ctx context.Context, token string) (bool, error)
	DeleteSession(ctx context.Context, token string) error
	CheckRateLimit(ctx context.Context, clientKey string, limit int, window time.Duration) (bool, error)
}

// EventPublisher fans booking events out to in-process consumers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// SheetsWriter mirrors the bookings book into a spreadsheet.
type SheetsWriter interface {
	UpsertBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID, status string) error
	DeleteBookingRow(ctx context.Context, bookingID string) error
}

// SyncWorker queues spreadsheet mirror work without blocking the caller.
type SyncWorker interface {
	EnqueueUpsert(ctx context.Context, booking *models.Booking) error
	EnqueueStatus(ctx context.Context, bookingID, status string) error
	EnqueueDelete(ctx context.Context, bookingID string) error
}
