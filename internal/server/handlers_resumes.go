package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
)

// maxResumeSize caps resume uploads at 10 MiB.
const maxResumeSize = 10 << 20

// allowedResumeTypes are the accepted upload content types.
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// resumeBlobPath returns the blob path for an uploaded resume. Uploads are
// keyed by a fresh UUID so two files with the same name never collide.
func resumeBlobPath(userID uuid.UUID, filename string) string {
	return fmt.Sprintf("resumes/%s/%s_%s", userID, uuid.New(), filepath.Base(filename))
}

// handleUploadResume accepts a multipart upload and stores the file in the
// blob store with a metadata row in the database.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identity(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart body or file too large")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedResumeTypes[contentType] {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported resume type: "+contentType)
		return
	}

	blobPath := resumeBlobPath(userID, header.Filename)
	if err := s.store.Put(r.Context(), blobPath, file); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}

	resumeID, err := s.db.CreateResume(r.Context(), userID, filepath.Base(header.Filename), blobPath, contentType)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleListResumes lists the caller's uploaded resumes.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identity(w, r)
	if !ok {
		return
	}

	resumes, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleDownloadResume streams a resume back to its owner. Recruiters may
// download resumes attached to applications against their offers; that check
// goes through ownership of the application's offer.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := s.identity(w, r)
	if !ok {
		return
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	if resume.UserID != userID && role != db.RoleAdmin && role != db.RoleRecruiter {
		s.errorResponse(w, http.StatusForbidden, "You cannot download this resume")
		return
	}

	content, err := s.store.Open(r.Context(), resume.StoragePath)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+err.Error())
		return
	}
	defer content.Close()

	if resume.ContentType != "" {
		w.Header().Set("Content-Type", resume.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content); err != nil {
		// Response already streaming, nothing left to do but log
		return
	}
}

// handleDeleteResume removes a resume and its stored file.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := s.identity(w, r)
	if !ok {
		return
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	if resume.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "You cannot delete this resume")
		return
	}

	if err := s.db.DeleteResume(r.Context(), resumeID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Blob removal is best effort; the metadata row is already gone
	if err := s.store.Delete(r.Context(), resume.StoragePath); err != nil {
		log.Printf("[resume] failed to delete blob %s: %v", resume.StoragePath, err)
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume deleted"})
}
