package domain

import (
	"context"
	"time"
)

// AttendanceRecord represents a single student's presence state for one
// local calendar day. At most one record exists per (student, day).
type AttendanceRecord struct {
	ID        int64      `json:"id"`
	StudentID int64      `json:"studentId"`
	Day       string     `json:"day"`
	Present   bool       `json:"present"`
	LoginTime *time.Time `json:"loginTime"`
}

// AttendanceRepository is the port for attendance persistence. Day ranges
// are inclusive "2006-01-02" strings.
type AttendanceRepository interface {
	// UpsertPresent marks the day present with the given login timestamp,
	// updating the existing row in place if one exists. The write must be
	// atomic with respect to other writes on the same (student, day).
	UpsertPresent(ctx context.Context, studentID int64, day string, loginAt time.Time) error
	// InsertAbsent creates absent records for the given days, skipping any
	// day that already has a record.
	InsertAbsent(ctx context.Context, studentID int64, days []string) error
	CountRange(ctx context.Context, studentID int64, startDay, endDay string) (total, present int, err error)
	// ListRange returns the records in the range ordered by day descending.
	ListRange(ctx context.Context, studentID int64, startDay, endDay string) ([]AttendanceRecord, error)
}
