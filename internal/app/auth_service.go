// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"rollcall/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAlreadyExists indicates that the username or email is already registered.
	ErrAlreadyExists = errors.New("username or email already exists")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrStudentNotFound indicates that the student does not exist.
	ErrStudentNotFound = errors.New("student not found")
)

// AuthService handles registration, authentication and session management.
type AuthService struct {
	students domain.StudentRepository
	sessions domain.SessionRepository
	lifetime time.Duration
	now      func() time.Time
}

// NewAuthService creates an authentication service issuing sessions with
// the given lifetime.
func NewAuthService(students domain.StudentRepository, sessions domain.SessionRepository, lifetime time.Duration) *AuthService {
	return &AuthService{
		students: students,
		sessions: sessions,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Register creates a new student account. Uniqueness of username and email
// is enforced by the storage layer, not pre-checked here.
func (s *AuthService) Register(ctx context.Context, username, password, name, email string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := s.students.Create(ctx, username, string(hash), name, email); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Login authenticates a student and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Student, error) {
	student, err := s.students.GetByUsername(ctx, username)
	if err != nil || student == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, student.ID)
	if err != nil {
		return "", nil, err
	}
	return token, student, nil
}

// Logout invalidates a session. Deleting an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	_, err := s.sessions.Delete(ctx, token)
	return err
}

// ValidateSession checks a session token and returns the student it belongs
// to. Validity is decided by comparing the stored expiry against the clock;
// expired rows may linger in storage and are never required to be gone.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Student, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		// Cleanup only; correctness comes from the comparison above.
		_, _ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	student, err := s.students.GetByID(ctx, session.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

// LoginWithStudent creates a session for a student authenticated externally
// (e.g. via SSO), auto-provisioning the account on first login. The
// provisioned account gets a random password hash so it can only be used
// through SSO.
func (s *AuthService) LoginWithStudent(ctx context.Context, username, name, email string) (string, *domain.Student, error) {
	student, err := s.students.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if student == nil {
		hash, err := bcrypt.GenerateFromPassword(randomBytes(16), bcrypt.DefaultCost)
		if err != nil {
			return "", nil, err
		}
		student, err = s.students.Create(ctx, username, string(hash), name, email)
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost a provisioning race; the account exists now.
			student, err = s.students.GetByUsername(ctx, username)
		}
		if err != nil {
			return "", nil, err
		}
	}

	token, err := s.issueSession(ctx, student.ID)
	if err != nil {
		return "", nil, err
	}
	return token, student, nil
}

func (s *AuthService) issueSession(ctx context.Context, studentID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	expiresAt := s.now().Add(s.lifetime)
	if err := s.sessions.Create(ctx, studentID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return b
}
