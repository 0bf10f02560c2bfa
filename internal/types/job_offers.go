package types

import "github.com/go-playground/validator/v10"

// CreateJobOfferRequest represents the request to post a new job offer.
type CreateJobOfferRequest struct {
	Title        string `json:"title" validate:"required,min=1"`
	Description  string `json:"description" validate:"required,min=1"`
	Category     string `json:"category,omitempty"`
	Location     string `json:"location,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// UpdateJobOfferRequest represents the request to edit an existing job offer.
type UpdateJobOfferRequest struct {
	Title        string `json:"title" validate:"required,min=1"`
	Description  string `json:"description" validate:"required,min=1"`
	Category     string `json:"category,omitempty"`
	Location     string `json:"location,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
	Status       string `json:"status" validate:"required,oneof=active inactive"`
}

// Validate validates the CreateJobOfferRequest using the validator.
func (r *CreateJobOfferRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateJobOfferRequest using the validator.
func (r *UpdateJobOfferRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
