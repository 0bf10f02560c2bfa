package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/report"
)

// handleExportApplications streams a CSV of every application against the
// caller's offers, newest first. Recruiter or admin only; unlike the weekly
// report job, the interactive surface rejects loudly.
func (s *Server) handleExportApplications(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.identity(w, r)
	if !ok {
		return
	}
	if role != db.RoleRecruiter && role != db.RoleAdmin {
		s.errorResponse(w, http.StatusForbidden, "Only recruiters can export applications")
		return
	}

	records, err := s.db.ExportApplicationsForRecruiter(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	filename := fmt.Sprintf("applications_export_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Render(records)); err != nil {
		return
	}
}
