package app

import (
	"context"
	"math"
	"time"

	"rollcall/internal/domain"
)

const maxWindowDays = 366

// AttendanceService encapsulates the attendance ledger use cases: marking
// presence and reporting windowed statistics and history.
type AttendanceService struct {
	repo       domain.AttendanceRepository
	windowDays int
	threshold  int
	now        func() time.Time
}

// NewAttendanceService creates an AttendanceService with the given default
// lookback window and attendance threshold percentage.
func NewAttendanceService(repo domain.AttendanceRepository, windowDays, threshold int) *AttendanceService {
	return &AttendanceService{
		repo:       repo,
		windowDays: windowDays,
		threshold:  threshold,
		now:        time.Now,
	}
}

// Stats summarises attendance over an inclusive day window.
type Stats struct {
	Percentage  float64 `json:"percentage"`
	PresentDays int     `json:"presentDays"`
	TotalDays   int     `json:"totalDays"`
	StartDay    string  `json:"startDay"`
	EndDay      string  `json:"endDay"`
	Threshold   int     `json:"threshold"`
	Below       bool    `json:"belowThreshold"`
}

// MarkPresent records the student as present for the day containing at.
// Repeat calls on the same day update the login timestamp in place; a
// backfilled absent record for the day flips to present. A day never
// reverts from present to absent.
func (s *AttendanceService) MarkPresent(ctx context.Context, studentID int64, at time.Time) error {
	return s.repo.UpsertPresent(ctx, studentID, domain.Day(at), at)
}

// Percentage computes attendance statistics for the trailing window of
// windowDays calendar days ending today (non-positive values fall back to
// the configured default).
//
// If the student has no records at all in the window, every weekday in it
// is first persisted as absent. The backfill fires at most once per window:
// as soon as any row exists, missing individual days are left alone.
func (s *AttendanceService) Percentage(ctx context.Context, studentID int64, windowDays int) (Stats, error) {
	windowDays = s.clampWindow(windowDays)
	today := s.now().In(time.Local)
	start := domain.WindowStart(today, windowDays)
	startDay, endDay := domain.Day(start), domain.Day(today)

	total, present, err := s.repo.CountRange(ctx, studentID, startDay, endDay)
	if err != nil {
		return Stats{}, err
	}

	if total == 0 {
		if missing := domain.WeekdaysIn(start, today); len(missing) > 0 {
			if err := s.repo.InsertAbsent(ctx, studentID, missing); err != nil {
				return Stats{}, err
			}
			total, present, err = s.repo.CountRange(ctx, studentID, startDay, endDay)
			if err != nil {
				return Stats{}, err
			}
		}
	}

	var pct float64
	if total > 0 {
		pct = round2(float64(present) / float64(total) * 100)
	}

	return Stats{
		Percentage:  pct,
		PresentDays: present,
		TotalDays:   total,
		StartDay:    startDay,
		EndDay:      endDay,
		Threshold:   s.threshold,
		Below:       pct < float64(s.threshold),
	}, nil
}

// History returns the attendance records in the trailing window, most
// recent day first. A student with no records in the window gets a single
// synthetic absent entry for today, so callers always receive at least one
// row.
func (s *AttendanceService) History(ctx context.Context, studentID int64, windowDays int) ([]domain.AttendanceRecord, error) {
	windowDays = s.clampWindow(windowDays)
	today := s.now().In(time.Local)
	startDay := domain.Day(domain.WindowStart(today, windowDays))
	endDay := domain.Day(today)

	records, err := s.repo.ListRange(ctx, studentID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		records = []domain.AttendanceRecord{{StudentID: studentID, Day: endDay, Present: false}}
	}
	return records, nil
}

func (s *AttendanceService) clampWindow(days int) int {
	if days <= 0 {
		days = s.windowDays
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}
	return days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
