package adapthttp

import (
	"net/http"
	"time"

	"rollcall/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth       *app.AuthService
	attendance *app.AttendanceService
	sso        *OIDCConfig
	webDir     string
	sessionTTL time.Duration
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, attendance *app.AttendanceService, sso *OIDCConfig, webDir string, sessionTTL time.Duration) *Server {
	if sso == nil {
		sso = &OIDCConfig{}
	}
	return &Server{
		auth:       auth,
		attendance: attendance,
		sso:        sso,
		webDir:     webDir,
		sessionTTL: sessionTTL,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/register", s.handleRegister)
	api.HandleFunc("/login", s.handleLogin)
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/dashboard", s.handleDashboard)
	protected.HandleFunc("/attendance", s.handleAttendance)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
