package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Booking is a single reservation record. Date and Time are kept as the
// wire strings ("2006-01-02" / "15:04") because every projection sorts and
// groups on the lexical form.
type Booking struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	PartySize       int       `json:"party_size"`
	GuestName       string    `json:"guest_name"`
	GuestPhone      string    `json:"guest_phone"`
	GuestEmail      string    `json:"guest_email,omitempty"`
	Occasion        string    `json:"occasion,omitempty"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	Source          string    `json:"source,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// EffectiveStatus resolves an unset status to confirmed.
func (b *Booking) EffectiveStatus() string {
	if b.Status == "" {
		return StatusConfirmed
	}
	return b.Status
}

// Hour returns the hour component of the booking time, -1 when malformed.
func (b *Booking) Hour() int {
	parts := strings.SplitN(b.Time, ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	return h
}

// Validate performs the exhaustive field checks applied at the store boundary.
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.GuestName) == "" {
		return fmt.Errorf("guest name is required")
	}
	if strings.TrimSpace(b.GuestPhone) == "" {
		return fmt.Errorf("guest phone is required")
	}
	if b.PartySize < 1 {
		return fmt.Errorf("party size must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", b.Date)
	}
	if _, err := time.Parse("15:04", b.Time); err != nil {
		return fmt.Errorf("invalid time %q: expected HH:MM", b.Time)
	}
	if b.Status != "" && !ValidStatus(b.Status) {
		return fmt.Errorf("unknown status %q", b.Status)
	}
	if b.Occasion != "" && !ValidOccasion(b.Occasion) {
		return fmt.Errorf("unknown occasion %q", b.Occasion)
	}
	if b.Source != "" && !ValidSource(b.Source) {
		return fmt.Errorf("unknown source %q", b.Source)
	}
	return nil
}

// ConfirmationRef derives the guest-facing reference shown after a successful
// reservation: the first eight characters of the store-assigned id, or the
// current time in base36 when no id was assigned.
func ConfirmationRef(id string, now time.Time) string {
	id = strings.TrimSpace(id)
	if id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		return "BT-" + strings.ToUpper(id)
	}
	return "BT-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}
