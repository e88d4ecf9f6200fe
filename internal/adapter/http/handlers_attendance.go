package adapthttp

import (
	"log"
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	student := studentFromContext(r)

	// days=0 lets the service apply the configured default window.
	stats, err := s.attendance.Percentage(r.Context(), student.ID, 0)
	if err != nil {
		log.Printf("dashboard stats for student %d: %v", student.ID, err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}
	history, err := s.attendance.History(r.Context(), student.ID, 0)
	if err != nil {
		log.Printf("dashboard history for student %d: %v", student.ID, err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"student": map[string]any{
			"username": student.Username,
			"name":     student.Name,
			"email":    student.Email,
		},
		"stats":   stats,
		"history": history,
	})
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	student := studentFromContext(r)
	days := intQuery(r, "days", 0)

	stats, err := s.attendance.Percentage(r.Context(), student.ID, days)
	if err != nil {
		log.Printf("attendance stats for student %d: %v", student.ID, err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}
	history, err := s.attendance.History(r.Context(), student.ID, days)
	if err != nil {
		log.Printf("attendance history for student %d: %v", student.ID, err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":   stats,
		"history": history,
	})
}
