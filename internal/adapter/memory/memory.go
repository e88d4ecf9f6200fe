// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"rollcall/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	students []*domain.Student
	records  []domain.AttendanceRecord
	sessions map[string]*domain.Session

	studentIDCounter int64
	recordIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.StudentRepository = (*DB)(nil)
var _ domain.AttendanceRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- StudentRepository ---

// GetByUsername retrieves a student by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, s := range db.students {
		if s.Username == username {
			return s, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a student by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, s := range db.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

// Create creates a new student, enforcing username and email uniqueness.
func (db *DB) Create(ctx context.Context, username, passwordHash, name, email string) (*domain.Student, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, s := range db.students {
		if s.Username == username || s.Email == email {
			return nil, domain.ErrDuplicate
		}
	}

	db.studentIDCounter++
	s := &domain.Student{
		ID:           db.studentIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Email:        email,
		CreatedAt:    time.Now().UTC(),
	}
	db.students = append(db.students, s)
	return s, nil
}

// --- AttendanceRepository ---

// UpsertPresent marks the day present, updating an existing record in place.
func (db *DB) UpsertPresent(ctx context.Context, studentID int64, day string, loginAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	at := loginAt.UTC()
	for i := range db.records {
		r := &db.records[i]
		if r.StudentID == studentID && r.Day == day {
			r.Present = true
			r.LoginTime = &at
			return nil
		}
	}

	db.recordIDCounter++
	db.records = append(db.records, domain.AttendanceRecord{
		ID:        db.recordIDCounter,
		StudentID: studentID,
		Day:       day,
		Present:   true,
		LoginTime: &at,
	})
	return nil
}

// InsertAbsent backfills absent records, skipping days that already exist.
func (db *DB) InsertAbsent(ctx context.Context, studentID int64, days []string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	existing := make(map[string]bool)
	for _, r := range db.records {
		if r.StudentID == studentID {
			existing[r.Day] = true
		}
	}

	for _, day := range days {
		if existing[day] {
			continue
		}
		db.recordIDCounter++
		db.records = append(db.records, domain.AttendanceRecord{
			ID:        db.recordIDCounter,
			StudentID: studentID,
			Day:       day,
			Present:   false,
		})
	}
	return nil
}

// CountRange counts records and present records in the inclusive day range.
func (db *DB) CountRange(ctx context.Context, studentID int64, startDay, endDay string) (int, int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var total, present int
	for _, r := range db.records {
		if r.StudentID == studentID && r.Day >= startDay && r.Day <= endDay {
			total++
			if r.Present {
				present++
			}
		}
	}
	return total, present, nil
}

// ListRange returns records in the inclusive day range, newest day first.
func (db *DB) ListRange(ctx context.Context, studentID int64, startDay, endDay string) ([]domain.AttendanceRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.AttendanceRecord
	for _, r := range db.records {
		if r.StudentID == studentID && r.Day >= startDay && r.Day <= endDay {
			out = append(out, r)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Day > out[j].Day
	})
	return out, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, studentID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		StudentID: studentID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expired sessions are returned
// as-is; validity is the caller's call.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session and reports whether it existed.
func (r *SessionRepo) Delete(ctx context.Context, token string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, ok := r.db.sessions[token]
	delete(r.db.sessions, token)
	return ok, nil
}
