package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rollcall/internal/domain"
)

// GetByUsername retrieves a student by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Student, error) {
	var s domain.Student
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, name, email, created_at FROM students WHERE username = $1",
		username,
	).Scan(&s.ID, &s.Username, &s.PasswordHash, &s.Name, &s.Email, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a student by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	var s domain.Student
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, name, email, created_at FROM students WHERE id = $1",
		id,
	).Scan(&s.ID, &s.Username, &s.PasswordHash, &s.Name, &s.Email, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student. A duplicate username or email surfaces as
// domain.ErrDuplicate.
func (d *DB) Create(ctx context.Context, username, passwordHash, name, email string) (*domain.Student, error) {
	var s domain.Student
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO students (username, password_hash, name, email, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id, username, password_hash, name, email, created_at",
		username, passwordHash, name, email, time.Now(),
	).Scan(&s.ID, &s.Username, &s.PasswordHash, &s.Name, &s.Email, &s.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create student %q: %w", username, domain.ErrDuplicate)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, studentID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (student_id, session_token, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		studentID, token, expiresAt, time.Now(),
	)
	return err
}

// GetByToken retrieves a session by token. Expired rows are returned as-is;
// the caller decides validity from ExpiresAt.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT session_token, student_id, expires_at, created_at FROM sessions WHERE session_token = $1",
		token,
	).Scan(&s.Token, &s.StudentID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token and reports whether a row was removed.
func (r *SessionRepo) Delete(ctx context.Context, token string) (bool, error) {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE session_token = $1", token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
