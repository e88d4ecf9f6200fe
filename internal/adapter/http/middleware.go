package adapthttp

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"rollcall/internal/app"
	"rollcall/internal/domain"
)

type contextKey string

const studentContextKey contextKey = "student"

// authMiddleware validates the session cookie and puts the student on the
// request context. An invalid session clears the cookie so the client is
// forced back through login.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		student, err := s.auth.ValidateSession(r.Context(), cookie.Value)
		switch {
		case errors.Is(err, app.ErrSessionNotFound),
			errors.Is(err, app.ErrSessionExpired),
			errors.Is(err, app.ErrStudentNotFound):
			clearSessionCookie(w)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		case err != nil:
			log.Printf("session validation: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), studentContextKey, student)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func studentFromContext(r *http.Request) *domain.Student {
	student, _ := r.Context().Value(studentContextKey).(*domain.Student)
	return student
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs method, path, status and duration for every request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
