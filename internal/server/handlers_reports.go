package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/report"
)

// handleDispatchReports enqueues one weekly report job per recruiter and
// returns immediately; report generation happens on the worker pool.
// Recruiter or admin only.
func (s *Server) handleDispatchReports(w http.ResponseWriter, r *http.Request) {
	_, role, ok := s.identity(w, r)
	if !ok {
		return
	}
	if role != db.RoleRecruiter && role != db.RoleAdmin {
		s.errorResponse(w, http.StatusForbidden, "Only recruiters can dispatch reports")
		return
	}

	count, err := s.dispatcher.DispatchWeekly(r.Context())
	if err != nil {
		// Some tasks may already be enqueued; report the partial count
		s.jsonResponse(w, http.StatusInternalServerError, map[string]any{
			"error":         "dispatch failed: " + err.Error(),
			"jobs_enqueued": count,
		})
		return
	}

	s.jsonResponse(w, http.StatusAccepted, map[string]any{
		"jobs_enqueued": count,
	})
}

// handleLatestReport streams the caller's most recent weekly report.
// Recruiter or admin only.
func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.identity(w, r)
	if !ok {
		return
	}
	if role != db.RoleRecruiter && role != db.RoleAdmin {
		s.errorResponse(w, http.StatusForbidden, report.ErrNotARecruiter.Error())
		return
	}

	artifact, err := s.locator.Latest(r.Context(), userID)
	if err != nil {
		if errors.Is(err, report.ErrNoReportFound) {
			s.errorResponse(w, http.StatusNotFound, report.ErrNoReportFound.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}
	defer artifact.Content.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+artifact.Name+"\"")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, artifact.Content); err != nil {
		return
	}
}
