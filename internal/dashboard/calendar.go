package dashboard

import "time"

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first day of the month with
// Monday as 0, matching the calendar grid layout.
func FirstWeekday(year int, month time.Month) int {
	wd := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// MonthDates lists every date of the month as "2006-01-02" strings, so the
// calendar handler can join them against the day summaries.
func MonthDates(year int, month time.Month) []string {
	days := DaysInMonth(year, month)
	out := make([]string, 0, days)
	for d := 1; d <= days; d++ {
		out = append(out, time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}
	return out
}
