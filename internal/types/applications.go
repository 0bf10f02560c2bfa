package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateApplicationRequest represents a candidate's submission against a job offer.
type CreateApplicationRequest struct {
	ResumeID uuid.UUID `json:"resume_id" validate:"required"`
}

// UpdateApplicationStatusRequest represents a recruiter's review decision.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateApplicationStatusRequest using the validator.
func (r *UpdateApplicationStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
