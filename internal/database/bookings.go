package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"tavola/internal/models"
)

const bookingColumns = `id, date, time, party_size, guest_name, guest_phone,
	guest_email, occasion, special_requests, status, source, created_at`

// ListBookings returns every booking ordered by date then time ascending,
// the wholesale read the dashboard cache is refreshed from.
func (db *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY date ASC, time ASC`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ListBookingsByDateRange returns bookings with date in [start, end],
// ordered by date then time. Dates are the lexical "2006-01-02" form.
func (db *DB) ListBookingsByDateRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE date >= ? AND date <= ? ORDER BY date ASC, time ASC`
	rows, err := db.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list bookings by range: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GetBooking returns a booking by its store id.
func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	rowID, err := storeID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	row := db.db.QueryRowContext(ctx, query, rowID)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// CreateBooking validates and inserts a booking, assigning its store id.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if err := booking.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	booking.Status = booking.EffectiveStatus()

	query := `INSERT INTO bookings (
				date, time, party_size, guest_name, guest_phone,
				guest_email, occasion, special_requests, status, source, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		booking.Date,
		booking.Time,
		booking.PartySize,
		booking.GuestName,
		booking.GuestPhone,
		nullable(booking.GuestEmail),
		nullable(booking.Occasion),
		nullable(booking.SpecialRequests),
		booking.Status,
		nullable(booking.Source),
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	booking.ID = strconv.FormatInt(id, 10)
	return nil
}

// UpdateBooking replaces the whole editable record.
func (db *DB) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	if err := booking.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	rowID, err := storeID(booking.ID)
	if err != nil {
		return ErrNotFound
	}

	query := `UPDATE bookings SET
				date = ?, time = ?, party_size = ?, guest_name = ?, guest_phone = ?,
				guest_email = ?, occasion = ?, special_requests = ?, status = ?, source = ?
			  WHERE id = ?`
	result, err := db.db.ExecContext(ctx, query,
		booking.Date,
		booking.Time,
		booking.PartySize,
		booking.GuestName,
		booking.GuestPhone,
		nullable(booking.GuestEmail),
		nullable(booking.Occasion),
		nullable(booking.SpecialRequests),
		booking.EffectiveStatus(),
		nullable(booking.Source),
		rowID,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateBookingStatus patches only the status column.
func (db *DB) UpdateBookingStatus(ctx context.Context, id, status string) error {
	rowID, err := storeID(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := db.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, rowID)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBooking hard-deletes a booking.
func (db *DB) DeleteBooking(ctx context.Context, id string) error {
	rowID, err := storeID(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := db.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, rowID)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// storeID parses the opaque string id back into the store's rowid. UUIDs of
// locally-identified records never parse, which callers map to ErrNotFound.
func storeID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b       models.Booking
		rowID   int64
		email   sql.NullString
		occ     sql.NullString
		reqs    sql.NullString
		source  sql.NullString
		created time.Time
	)
	err := row.Scan(
		&rowID, &b.Date, &b.Time, &b.PartySize, &b.GuestName, &b.GuestPhone,
		&email, &occ, &reqs, &b.Status, &source, &created,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = strconv.FormatInt(rowID, 10)
	b.GuestEmail = email.String
	b.Occasion = occ.String
	b.SpecialRequests = reqs.String
	b.Source = source.String
	b.CreatedAt = created
	return b, nil
}
