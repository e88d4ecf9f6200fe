package domain_test

import (
	"testing"
	"time"

	"rollcall/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWeekday(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"monday", date(2026, time.March, 2), true},
		{"wednesday", date(2026, time.March, 4), true},
		{"friday", date(2026, time.March, 6), true},
		{"saturday", date(2026, time.March, 7), false},
		{"sunday", date(2026, time.March, 8), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.IsWeekday(tc.day); got != tc.want {
				t.Errorf("IsWeekday(%s) = %v; want %v", tc.day.Weekday(), got, tc.want)
			}
		})
	}
}

func TestWeekdaysIn(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
		first      string
		last       string
	}{
		// Thu 2026-02-26 .. Wed 2026-03-04: Thu Fri Mon Tue Wed.
		{"seven days ending wednesday", date(2026, time.February, 26), date(2026, time.March, 4), 5, "2026-02-26", "2026-03-04"},
		{"full week", date(2026, time.March, 2), date(2026, time.March, 8), 5, "2026-03-02", "2026-03-06"},
		{"weekend only", date(2026, time.March, 7), date(2026, time.March, 8), 0, "", ""},
		{"single weekday", date(2026, time.March, 4), date(2026, time.March, 4), 1, "2026-03-04", "2026-03-04"},
		{"end before start", date(2026, time.March, 5), date(2026, time.March, 4), 0, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.WeekdaysIn(tc.start, tc.end)
			if len(got) != tc.want {
				t.Fatalf("got %d weekdays (%v); want %d", len(got), got, tc.want)
			}
			if tc.want == 0 {
				return
			}
			if got[0] != tc.first || got[len(got)-1] != tc.last {
				t.Errorf("range %s..%s; want %s..%s", got[0], got[len(got)-1], tc.first, tc.last)
			}
		})
	}
}

func TestWindowStart(t *testing.T) {
	today := date(2026, time.March, 4)
	start := domain.WindowStart(today, 7)
	if got := start.Format(domain.DayFormat); got != "2026-02-26" {
		t.Errorf("WindowStart = %s; want 2026-02-26", got)
	}
	if one := domain.WindowStart(today, 1); !one.Equal(today) {
		t.Errorf("1-day window should start today, got %s", one)
	}
}
