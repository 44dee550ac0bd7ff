// Package dashboard holds the booking view-model shared by the admin
// surfaces: an owned in-memory collection plus the pure projections derived
// from it (search/filter, calendar day summaries, selected-date list,
// hour-bucketed timeline, stats). The collection is only ever mutated by
// whole-slice replacement, so readers always observe a consistent snapshot.
package dashboard

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"tavola/internal/models"
)

// State owns the in-memory booking collection.
type State struct {
	mu       sync.RWMutex
	bookings []models.Booking
}

func New() *State {
	return &State{}
}

// Replace swaps the whole collection.
func (s *State) Replace(bookings []models.Booking) {
	next := make([]models.Booking, len(bookings))
	copy(next, bookings)
	sortByDateTime(next)

	s.mu.Lock()
	s.bookings = next
	s.mu.Unlock()
}

// Bookings returns a snapshot copy of the collection.
func (s *State) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// Get finds a booking by id.
func (s *State) Get(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Filter applies the free-text search and the status filter, in that order.
// An empty query matches everything; status "all" (or empty) is a no-op.
// Input order is preserved.
func (s *State) Filter(query, status string) []models.Booking {
	result := s.Bookings()

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		matched := make([]models.Booking, 0, len(result))
		for _, b := range result {
			if matchesQuery(&b, q) {
				matched = append(matched, b)
			}
		}
		result = matched
	}

	if status != "" && status != models.StatusFilterAll {
		matched := make([]models.Booking, 0, len(result))
		for _, b := range result {
			if b.EffectiveStatus() == status {
				matched = append(matched, b)
			}
		}
		result = matched
	}

	return result
}

// matchesQuery checks the case-insensitive substring match against name,
// phone, email, occasion and special requests. Any single hit is enough.
func matchesQuery(b *models.Booking, q string) bool {
	for _, field := range []string{b.GuestName, b.GuestPhone, b.GuestEmail, b.Occasion, b.SpecialRequests} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// DaySummary aggregates one calendar day for the density indicators.
type DaySummary struct {
	Count    int      `json:"count"`
	Covers   int      `json:"covers"`
	Statuses []string `json:"statuses"`
	Density  string   `json:"density"`
}

// DaySummaries groups the full, unfiltered collection by date.
func (s *State) DaySummaries() map[string]DaySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]DaySummary)
	for _, b := range s.bookings {
		day := out[b.Date]
		day.Count++
		day.Covers += b.PartySize
		day.Statuses = append(day.Statuses, b.EffectiveStatus())
		out[b.Date] = day
	}
	for date, day := range out {
		day.Density = models.DensityFor(day.Count)
		out[date] = day
	}
	return out
}

// ForDate restricts the search-filtered collection to one date, sorted
// ascending by time. This feeds the calendar side panel and the list view.
func (s *State) ForDate(query, status, date string) []models.Booking {
	filtered := s.Filter(query, status)
	out := make([]models.Booking, 0, len(filtered))
	for _, b := range filtered {
		if b.Date == date {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// HourBucket is one fixed row of the timeline view. Empty buckets are kept.
type HourBucket struct {
	Hour     string           `json:"hour"`
	Bookings []models.Booking `json:"bookings"`
}

// Timeline partitions the selected date's bookings into the fixed one-hour
// buckets by truncating each booking's time to its hour component.
func (s *State) Timeline(query, status, date string) []HourBucket {
	selected := s.ForDate(query, status, date)

	buckets := make([]HourBucket, 0, len(models.TimelineHours))
	for _, hour := range models.TimelineHours {
		slot := HourBucket{Hour: hour, Bookings: []models.Booking{}}
		slotHour, _ := strconv.Atoi(strings.SplitN(hour, ":", 2)[0])
		for _, b := range selected {
			if b.Hour() == slotHour {
				slot.Bookings = append(slot.Bookings, b)
			}
		}
		buckets = append(buckets, slot)
	}
	return buckets
}

// Stats is the figures bar at the top of the admin dashboard.
type Stats struct {
	TodayBookings     int     `json:"today_bookings"`
	ConfirmedToday    int     `json:"confirmed_today"`
	CoversToday       int     `json:"covers_today"`
	UpcomingConfirmed int     `json:"upcoming_confirmed"`
	WeekCovers        int     `json:"week_covers"`
	NoShows           int     `json:"no_shows"`
	AvgPartySize      float64 `json:"avg_party_size"`
}

// Stats derives the dashboard figures relative to the given day.
func (s *State) Stats(now time.Time) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := now.Format("2006-01-02")
	weekEnd := now.AddDate(0, 0, 7).Format("2006-01-02")

	var st Stats
	var totalParty int
	for _, b := range s.bookings {
		totalParty += b.PartySize
		status := b.EffectiveStatus()

		if b.Date == today {
			st.TodayBookings++
			st.CoversToday += b.PartySize
			if status == models.StatusConfirmed {
				st.ConfirmedToday++
			}
		}
		if b.Date >= today && status == models.StatusConfirmed {
			st.UpcomingConfirmed++
		}
		if b.Date >= today && b.Date < weekEnd {
			st.WeekCovers += b.PartySize
		}
		if status == models.StatusNoShow {
			st.NoShows++
		}
	}
	if n := len(s.bookings); n > 0 {
		st.AvgPartySize = float64(totalParty) / float64(n)
	}
	return st
}

// ApplyStatus patches a single booking's status, leaving every other field
// untouched. Returns false when the id is unknown.
func (s *State) ApplyStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	next := make([]models.Booking, len(s.bookings))
	for i, b := range s.bookings {
		if b.ID == id {
			b.Status = status
			found = true
		}
		next[i] = b
	}
	if found {
		s.bookings = next
	}
	return found
}

// Upsert replaces the booking with the same id, or appends it, keeping the
// collection ordered by date then time.
func (s *State) Upsert(booking models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Booking, 0, len(s.bookings)+1)
	replaced := false
	for _, b := range s.bookings {
		if b.ID == booking.ID && booking.ID != "" {
			next = append(next, booking)
			replaced = true
			continue
		}
		next = append(next, b)
	}
	if !replaced {
		next = append(next, booking)
	}
	sortByDateTime(next)
	s.bookings = next
}

// Remove drops a booking by id. Returns false when the id is unknown.
func (s *State) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Booking, 0, len(s.bookings))
	found := false
	for _, b := range s.bookings {
		if b.ID == id {
			found = true
			continue
		}
		next = append(next, b)
	}
	if found {
		s.bookings = next
	}
	return found
}

func sortByDateTime(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].Time < bookings[j].Time
	})
}
