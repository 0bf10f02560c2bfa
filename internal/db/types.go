package db

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// Job offer statuses
const (
	OfferStatusActive   = "active"
	OfferStatusInactive = "inactive"
)

// Application statuses
const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// User represents an account on the board
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsRecruiter reports whether the user may own job offers and receive reports.
func (u *User) IsRecruiter() bool {
	return u.Role == RoleRecruiter || u.Role == RoleAdmin
}

// IsAdmin reports whether the user has admin privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// JobOffer represents a posting owned by a recruiter
type JobOffer struct {
	ID           uuid.UUID `json:"id"`
	RecruiterID  uuid.UUID `json:"recruiter_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category,omitempty"`
	Location     string    `json:"location,omitempty"`
	ContractType string    `json:"contract_type,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application represents a candidate's submission against a job offer
type Application struct {
	ID         uuid.UUID `json:"id"`
	JobOfferID uuid.UUID `json:"job_offer_id"`
	UserID     uuid.UUID `json:"user_id"`
	ResumeID   uuid.UUID `json:"resume_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Resume represents an uploaded resume file; the bytes live in the blob store
type Resume struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	ContentType string    `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApplicationRecord is one row of an application export, joined with the
// applicant and the job offer it targets.
type ApplicationRecord struct {
	CandidateName string    `json:"candidate_name"`
	Email         string    `json:"email"`
	JobTitle      string    `json:"job_title"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
}
