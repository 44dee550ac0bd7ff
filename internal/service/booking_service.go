package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"tavola/internal/dashboard"
	"tavola/internal/database"
	"tavola/internal/domain"
	"tavola/internal/events"
	"tavola/internal/metrics"
	"tavola/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrValidation wraps every rejected input so handlers can map it to 400.
var ErrValidation = errors.New("validation failed")

// Data sources reported by LoadBookings.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoadResult carries the booking collection together with where it came
// from, so callers can tell live data apart from the demo fallback.
type LoadResult struct {
	Bookings []models.Booking
	Source   string
}

// ReservationRequest is a guest submission from the public booking form.
type ReservationRequest struct {
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	GuestPhone      string `json:"guest_phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"party_size"`
	Occasion        string `json:"occasion"`
	SpecialRequests string `json:"special_requests"`
}

type BookingService struct {
	store          domain.Store
	state          *dashboard.State
	eventBus       domain.EventPublisher
	sheetsWorker   domain.SyncWorker
	maxPartySize   int
	maxBookingDays int
	logger         *zerolog.Logger
	source         atomic.Value // last LoadBookings data source
}

func NewBookingService(store domain.Store, state *dashboard.State, eventBus domain.EventPublisher, sheetsWorker domain.SyncWorker, maxPartySize, maxBookingDays int, logger *zerolog.Logger) *BookingService {
	if maxPartySize <= 0 {
		maxPartySize = 12
	}
	if maxBookingDays <= 0 {
		maxBookingDays = 365
	}
	return &BookingService{
		store:          store,
		state:          state,
		eventBus:       eventBus,
		sheetsWorker:   sheetsWorker,
		maxPartySize:   maxPartySize,
		maxBookingDays: maxBookingDays,
		logger:         logger,
	}
}

// LoadBookings refreshes the in-memory state from the store. A read failure
// or an empty store substitutes the demo dataset so the admin views always
// have something to render.
func (s *BookingService) LoadBookings(ctx context.Context) LoadResult {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil || len(bookings) == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Msg("store read failed, serving demo bookings")
		}
		metrics.IncFallback("bookings")
		demo := models.DemoBookings(time.Now())
		s.state.Replace(demo)
		s.source.Store(SourceFallback)
		return LoadResult{Bookings: s.state.Bookings(), Source: SourceFallback}
	}

	s.state.Replace(bookings)
	s.source.Store(SourceLive)
	return LoadResult{Bookings: s.state.Bookings(), Source: SourceLive}
}

// DataSource reports where the current collection came from.
func (s *BookingService) DataSource() string {
	if v, ok := s.source.Load().(string); ok {
		return v
	}
	return SourceFallback
}

// CreateGuestBooking handles a public reservation form submission. The
// returned string is the guest-facing confirmation reference.
func (s *BookingService) CreateGuestBooking(ctx context.Context, req ReservationRequest) (*models.Booking, string, error) {
	if err := s.validateReservation(&req); err != nil {
		return nil, "", err
	}

	booking := models.Booking{
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestPhone:      strings.TrimSpace(req.GuestPhone),
		GuestEmail:      strings.TrimSpace(req.GuestEmail),
		Occasion:        req.Occasion,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Status:          models.StatusConfirmed,
		Source:          models.SourceWebsite,
	}

	s.persistBooking(ctx, &booking)
	return &booking, models.ConfirmationRef(booking.ID, time.Now()), nil
}

// CreateManualBooking records a staff-entered booking. Email is optional and
// not pattern-checked here; staff type what the guest gave them.
func (s *BookingService) CreateManualBooking(ctx context.Context, booking *models.Booking) error {
	if booking.Status == "" {
		booking.Status = models.StatusConfirmed
	}
	if booking.Source == "" {
		booking.Source = models.SourceAdmin
	}
	if booking.PartySize > s.maxPartySize {
		return fmt.Errorf("%w: party size must be at most %d", ErrValidation, s.maxPartySize)
	}
	if err := booking.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.persistBooking(ctx, booking)
	return nil
}

// UpdateBooking replaces a booking wholesale.
func (s *BookingService) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	if err := booking.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, ok := s.state.Get(booking.ID); !ok {
		return fmt.Errorf("booking %s not found", booking.ID)
	}

	if err := s.store.UpdateBooking(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID).Msg("store update failed, keeping local copy")
		metrics.IncStoreWriteFailure()
	}

	s.state.Upsert(*booking)
	s.publishEvent(events.EventBookingUpdated, booking, "")
	s.enqueueUpsert(ctx, booking)
	return nil
}

// SetStatus moves a booking to a new status. Any known status is accepted
// from any other; every transition is logged and counted.
func (s *BookingService) SetStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	prev, ok := s.state.Get(id)
	if !ok {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	from := prev.EffectiveStatus()

	if err := s.store.UpdateBookingStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Str("booking_id", id).Msg("store status update failed, keeping local copy")
		metrics.IncStoreWriteFailure()
	}

	s.state.ApplyStatus(id, status)
	s.logger.Info().
		Str("booking_id", id).
		Str("from", from).
		Str("to", status).
		Msg("booking status changed")
	metrics.IncStatusTransition(from, status)

	updated, _ := s.state.Get(id)
	s.publishEvent(events.EventBookingStatusChanged, &updated, from)
	s.enqueueStatus(ctx, id, status)
	return &updated, nil
}

// DeleteBooking removes a booking everywhere. A store miss is fine: locally
// identified records never made it there.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	booking, ok := s.state.Get(id)
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}

	if err := s.store.DeleteBooking(ctx, id); err != nil && !errors.Is(err, database.ErrNotFound) {
		s.logger.Error().Err(err).Str("booking_id", id).Msg("store delete failed, removing local copy anyway")
	}

	s.state.Remove(id)
	s.publishEvent(events.EventBookingDeleted, &booking, "")
	s.enqueueDelete(ctx, id)
	return nil
}

// GetBooking reads from the in-memory state the views are built on.
func (s *BookingService) GetBooking(id string) (models.Booking, bool) {
	return s.state.Get(id)
}

func (s *BookingService) validateReservation(req *ReservationRequest) error {
	if strings.TrimSpace(req.GuestName) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.GuestEmail)) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if strings.TrimSpace(req.GuestPhone) == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if req.PartySize < 1 || req.PartySize > s.maxPartySize {
		return fmt.Errorf("%w: party size must be between 1 and %d", ErrValidation, s.maxPartySize)
	}
	if req.Occasion != "" && !models.ValidOccasion(req.Occasion) {
		return fmt.Errorf("%w: unknown occasion %q", ErrValidation, req.Occasion)
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return fmt.Errorf("%w: invalid time %q", ErrValidation, req.Time)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrValidation, req.Date)
	}
	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today.AddDate(0, 0, -1)) {
		return fmt.Errorf("%w: date is in the past", ErrValidation)
	}
	if date.After(today.AddDate(0, 0, s.maxBookingDays)) {
		return fmt.Errorf("%w: date is more than %d days ahead", ErrValidation, s.maxBookingDays)
	}
	return nil
}

// persistBooking writes through to the store and patches the local state
// regardless of the outcome. A failed store write leaves a locally
// identified record behind so the admin views stay coherent; the failure is
// logged and counted instead of surfacing to the guest.
func (s *BookingService) persistBooking(ctx context.Context, booking *models.Booking) {
	localOnly := false
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("guest", booking.GuestName).Msg("store write failed, keeping booking locally")
		metrics.IncStoreWriteFailure()
		booking.ID = uuid.NewString()
		if booking.CreatedAt.IsZero() {
			booking.CreatedAt = time.Now().UTC()
		}
		localOnly = true
	}

	s.state.Upsert(*booking)
	metrics.IncReservation(booking.Source)

	payload := s.payloadFor(booking, "")
	payload.LocalOnly = localOnly
	s.publish(events.EventBookingCreated, payload, booking.ID)

	if !localOnly {
		s.enqueueUpsert(ctx, booking)
	}
}

func (s *BookingService) payloadFor(booking *models.Booking, prevStatus string) events.BookingEventPayload {
	return events.BookingEventPayload{
		BookingID:  booking.ID,
		GuestName:  booking.GuestName,
		GuestPhone: booking.GuestPhone,
		Date:       booking.Date,
		Time:       booking.Time,
		PartySize:  booking.PartySize,
		Status:     booking.EffectiveStatus(),
		PrevStatus: prevStatus,
		Occasion:   booking.Occasion,
		Source:     booking.Source,
	}
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, prevStatus string) {
	s.publish(eventType, s.payloadFor(booking, prevStatus), booking.ID)
}

func (s *BookingService) publish(eventType string, payload events.BookingEventPayload, bookingID string) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", bookingID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueUpsert(ctx context.Context, booking *models.Booking) {
	if s.sheetsWorker == nil {
		return
	}
	if err := s.sheetsWorker.EnqueueUpsert(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID).Msg("sheets enqueue error")
	}
}

func (s *BookingService) enqueueStatus(ctx context.Context, id, status string) {
	if s.sheetsWorker == nil {
		return
	}
	if err := s.sheetsWorker.EnqueueStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Str("booking_id", id).Msg("sheets enqueue error")
	}
}

func (s *BookingService) enqueueDelete(ctx context.Context, id string) {
	if s.sheetsWorker == nil {
		return
	}
	if err := s.sheetsWorker.EnqueueDelete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("booking_id", id).Msg("sheets enqueue error")
	}
}
