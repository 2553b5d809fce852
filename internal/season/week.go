package season

import "time"

// WeekOfMonth returns the week number (1-4) for the given date. Weeks start on
// Monday, and the number is derived from the weekday the month started on:
// week = min(4, ceil((firstWeekdayOffset + dayOfMonth) / 7)). The trailing days
// of long months fold into week 4.
func WeekOfMonth(d time.Time) int {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	week := (offset + d.Day() + 6) / 7
	if week > 4 {
		week = 4
	}
	return week
}
