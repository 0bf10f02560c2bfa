package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/types"
)

// parseQueryInt parses an integer query parameter with a default and an
// optional maximum (0 means no maximum).
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// identity resolves the authenticated caller's user ID and role from the
// request context. Writes a 401 and returns false if the context carries
// no identity.
func (s *Server) identity(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, "", false
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, "", false
	}
	return userID, role, true
}

// ListJobOffersResponse represents the response for listing job offers
type ListJobOffersResponse struct {
	Offers []db.JobOffer `json:"offers"`
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
}

// handleListJobOffers lists job offers with optional filters
func (s *Server) handleListJobOffers(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)

	filters := db.JobOfferFilters{
		Category:     r.URL.Query().Get("category"),
		Location:     r.URL.Query().Get("location"),
		ContractType: r.URL.Query().Get("contract_type"),
		Status:       r.URL.Query().Get("status"),
		Limit:        limit,
	}

	if recruiterIDStr := r.URL.Query().Get("recruiter_id"); recruiterIDStr != "" {
		recruiterID, err := uuid.Parse(recruiterIDStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid recruiter_id")
			return
		}
		filters.RecruiterID = recruiterID
	}

	offers, err := s.db.ListJobOffers(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobOffersResponse{
		Offers: offers,
		Count:  len(offers),
		Limit:  limit,
	})
}

// handleGetJobOffer retrieves a job offer by its ID
func (s *Server) handleGetJobOffer(w http.ResponseWriter, r *http.Request) {
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

	s.jsonResponse(w, http.StatusOK, offer)
}

// handleCreateJobOffer creates a new job offer owned by the caller.
// Requires the recruiter or admin role.
func (s *Server) handleCreateJobOffer(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.identity(w, r)
	if !ok {
		return
	}
	if role != db.RoleRecruiter && role != db.RoleAdmin {
		s.errorResponse(w, http.StatusForbidden, "Only recruiters can post job offers")
		return
	}

	var req types.CreateJobOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	status := req.Status
	if status == "" {
		status = db.OfferStatusActive
	}

	offer := &db.JobOffer{
		RecruiterID:  userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		ContractType: req.ContractType,
		Status:       status,
	}

	offerID, err := s.db.CreateJobOffer(r.Context(), offer)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	created, err := s.db.GetJobOffer(r.Context(), offerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleUpdateJobOffer edits an existing job offer. Only the owning
// recruiter or an admin may edit.
func (s *Server) handleUpdateJobOffer(w http.ResponseWriter, r *http.Request) {
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
		s.errorResponse(w, http.StatusForbidden, "Only the owning recruiter can edit this job offer")
		return
	}

	var req types.UpdateJobOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	offer.Title = req.Title
	offer.Description = req.Description
	offer.Category = req.Category
	offer.Location = req.Location
	offer.ContractType = req.ContractType
	offer.Status = req.Status

	if err := s.db.UpdateJobOffer(r.Context(), offer); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	updated, err := s.db.GetJobOffer(r.Context(), offerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteJobOffer deletes a job offer. Only the owning recruiter or an
// admin may delete.
func (s *Server) handleDeleteJobOffer(w http.ResponseWriter, r *http.Request) {
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
		s.errorResponse(w, http.StatusForbidden, "Only the owning recruiter can delete this job offer")
		return
	}

	if err := s.db.DeleteJobOffer(r.Context(), offerID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Job offer deleted"})
}
