package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/types"
)

// handleCreateApplication submits an application against a job offer.
// A candidate may apply once per offer; the resume must belong to the caller.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identity(w, r)
	if !ok {
		return
	}

	offerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job offer ID")
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	offer, err := s.db.GetJobOffer(r.Context(), offerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offer == nil {
		s.errorResponse(w, http.StatusNotFound, "Job offer not found")
		return
	}
	if offer.Status != db.OfferStatusActive {
		s.errorResponse(w, http.StatusConflict, "Job offer is no longer accepting applications")
		return
	}

	resume, err := s.db.GetResume(r.Context(), req.ResumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil || resume.UserID != userID {
		s.errorResponse(w, http.StatusBadRequest, "Resume not found")
		return
	}

	applicationID, err := s.db.CreateApplication(r.Context(), offerID, userID, req.ResumeID)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateApplication) {
			s.errorResponse(w, http.StatusConflict, "You have already applied to this job offer")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Confirmation email is intentionally a logged no-op.
	log.Printf("[application] confirmation for application %s to offer %q", applicationID, offer.Title)

	application, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, application)
}

// handleListOfferApplications lists applications for a job offer. Only the
// owning recruiter or an admin may list.
func (s *Server) handleListOfferApplications(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.identity(w, r)
	if !ok {
		return
	}

	offerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job offer ID")
		return
	}

	offer, err := s.db.GetJobOffer(r.Context(), offerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offer == nil {
		s.errorResponse(w, http.StatusNotFound, "Job offer not found")
		return
	}
	if offer.RecruiterID != userID && role != db.RoleAdmin {
		s.errorResponse(w, http.StatusForbidden, "Only the owning recruiter can view applications")
		return
	}

	applications, err := s.db.ListApplicationsForOffer(r.Context(), offerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": applications,
		"count":        len(applications),
	})
}

// handleListMyApplications lists the caller's own applications, newest first.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identity(w, r)
	if !ok {
		return
	}

	applications, err := s.db.ListApplicationsForUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": applications,
		"count":        len(applications),
	})
}

// handleUpdateApplicationStatus records a review decision. Only the recruiter
// owning the targeted offer or an admin may update.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.identity(w, r)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	application, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	offer, err := s.db.GetJobOffer(r.Context(), application.JobOfferID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if offer == nil || (offer.RecruiterID != userID && role != db.RoleAdmin) {
		s.errorResponse(w, http.StatusForbidden, "Only the owning recruiter can review applications")
		return
	}

	if err := s.db.UpdateApplicationStatus(r.Context(), applicationID, req.Status); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	updated, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
