package domain

import "time"

// DayFormat is the layout used for local calendar days throughout the app.
const DayFormat = "2006-01-02"

// Day formats t as a local calendar day.
func Day(t time.Time) string {
	return t.In(time.Local).Format(DayFormat)
}

// WindowStart returns the first day of an inclusive trailing window of
// days calendar days ending at today.
func WindowStart(today time.Time, days int) time.Time {
	return today.AddDate(0, 0, -(days - 1))
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WeekdaysIn returns the Mon-Fri day strings between start and end,
// inclusive on both ends. Returns nil when the range contains no weekdays
// or end precedes start.
func WeekdaysIn(start, end time.Time) []string {
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			days = append(days, d.Format(DayFormat))
		}
	}
	return days
}
