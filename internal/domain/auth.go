// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicate is returned by repositories when an insert violates a
// uniqueness constraint (username, email, or (student, day)).
var ErrDuplicate = errors.New("duplicate record")

// Student represents a registered student account.
type Student struct {
	ID           int64
	Username     string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session represents an active login session.
type Session struct {
	Token     string
	StudentID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// StudentRepository defines the port for student persistence operations.
// Lookups return (nil, nil) when no row matches.
type StudentRepository interface {
	GetByUsername(ctx context.Context, username string) (*Student, error)
	GetByID(ctx context.Context, id int64) (*Student, error)
	Create(ctx context.Context, username, passwordHash, name, email string) (*Student, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, studentID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	// Delete removes a session and reports whether a row existed. Deleting
	// an absent token is not an error.
	Delete(ctx context.Context, token string) (bool, error)
}
