package models

const (
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

const (
	SourceWebsite = "website"
	SourcePhone   = "phone"
	SourceWalkIn  = "walk-in"
	SourceAdmin   = "admin"
)

// StatusFilterAll is the sentinel that disables status filtering.
const StatusFilterAll = "all"

// Statuses in the order the admin toolbar presents them.
var Statuses = []string{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}

var Occasions = []string{
	"None",
	"Birthday",
	"Anniversary",
	"Date Night",
	"Business Dinner",
	"Celebration",
	"Other",
}

var Sources = []string{SourceWebsite, SourcePhone, SourceWalkIn, SourceAdmin}

// TimeSlots offered to guests on the public reservation form.
var TimeSlots = []string{
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00", "21:30",
}

// AdminTimeSlots additionally cover the quiet afternoon hours so staff can
// record walk-ins and phone bookings outside the public grid.
var AdminTimeSlots = []string{
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00",
	"17:00", "17:30", "18:00", "18:30", "19:00", "19:30", "20:00",
	"20:30", "21:00", "21:30", "22:00",
}

// TimelineHours are the fixed one-hour buckets of the timeline view.
var TimelineHours = []string{
	"12:00", "13:00", "14:00", "15:00", "16:00",
	"17:00", "18:00", "19:00", "20:00", "21:00", "22:00",
}

// Density tiers for the calendar cells.
const (
	DensityHigh   = "high"
	DensityMedium = "medium"
	DensityLow    = "low"

	densityHighMin   = 5
	densityMediumMin = 3
)

// DensityFor maps a per-day booking count to its visual tier.
func DensityFor(count int) string {
	switch {
	case count >= densityHighMin:
		return DensityHigh
	case count >= densityMediumMin:
		return DensityMedium
	default:
		return DensityLow
	}
}

func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func ValidOccasion(o string) bool {
	for _, known := range Occasions {
		if o == known {
			return true
		}
	}
	return false
}

func ValidSource(s string) bool {
	for _, known := range Sources {
		if s == known {
			return true
		}
	}
	return false
}
