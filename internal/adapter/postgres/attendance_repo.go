package postgres

import (
	"context"
	"database/sql"
	"time"

	"rollcall/internal/domain"

	"github.com/lib/pq"
)

// UpsertPresent marks a student present for the day, creating the record or
// flipping an existing (possibly backfilled) one in place. ON CONFLICT makes
// the read-check-write atomic, so concurrent logins cannot produce a second
// row for the same (student, day).
func (d *DB) UpsertPresent(ctx context.Context, studentID int64, day string, loginAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO attendance (student_id, date, logged_in, login_time) VALUES ($1, $2, TRUE, $3)
		 ON CONFLICT (student_id, date) DO UPDATE SET logged_in = TRUE, login_time = EXCLUDED.login_time;`,
		studentID, day, loginAt.UTC(),
	)
	return err
}

// InsertAbsent backfills absent records for the given days. Days that
// already have a record are left untouched.
func (d *DB) InsertAbsent(ctx context.Context, studentID int64, days []string) error {
	if len(days) == 0 {
		return nil
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO attendance (student_id, date, logged_in, login_time)
		 SELECT $1, unnest($2::text[]), FALSE, NULL
		 ON CONFLICT (student_id, date) DO NOTHING;`,
		studentID, pq.Array(days),
	)
	return err
}

// CountRange returns the number of records and the number of present
// records in the inclusive day range.
func (d *DB) CountRange(ctx context.Context, studentID int64, startDay, endDay string) (int, int, error) {
	var total, present int
	err := d.sql.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE logged_in) FROM attendance WHERE student_id = $1 AND date BETWEEN $2 AND $3;",
		studentID, startDay, endDay,
	).Scan(&total, &present)
	return total, present, err
}

// ListRange returns the records in the inclusive day range, newest day
// first.
func (d *DB) ListRange(ctx context.Context, studentID int64, startDay, endDay string) ([]domain.AttendanceRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, date, logged_in, login_time FROM attendance WHERE student_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date DESC;",
		studentID, startDay, endDay,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.AttendanceRecord
	for rows.Next() {
		var r domain.AttendanceRecord
		var loginTime sql.NullTime
		if err := rows.Scan(&r.ID, &r.Day, &r.Present, &loginTime); err != nil {
			return nil, err
		}
		r.StudentID = studentID
		if loginTime.Valid {
			t := loginTime.Time
			r.LoginTime = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
