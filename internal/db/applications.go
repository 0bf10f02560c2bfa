package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// ErrDuplicateApplication indicates the user already applied to this job offer.
var ErrDuplicateApplication = errors.New("application already exists for this job offer")

// CreateApplication creates a new application and returns its ID.
// Returns ErrDuplicateApplication when the (user, job offer) pair already exists.
func (db *DB) CreateApplication(ctx context.Context, jobOfferID, userID, resumeID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_offer_id, user_id, resume_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		jobOfferID, userID, resumeID, ApplicationPending,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, ErrDuplicateApplication
		}
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, applicationID uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_offer_id, user_id, resume_id, status, created_at, updated_at
		 FROM applications WHERE id = $1`,
		applicationID,
	).Scan(&a.ID, &a.JobOfferID, &a.UserID, &a.ResumeID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// UpdateApplicationStatus sets the review status of an application
func (db *DB) UpdateApplicationStatus(ctx context.Context, applicationID uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, applicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	return nil
}

// ListApplicationsForOffer retrieves all applications for a job offer, newest first
func (db *DB) ListApplicationsForOffer(ctx context.Context, jobOfferID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_offer_id, user_id, resume_id, status, created_at, updated_at
		 FROM applications WHERE job_offer_id = $1
		 ORDER BY created_at DESC`,
		jobOfferID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

// ListApplicationsForUser retrieves all applications submitted by a candidate, newest first
func (db *DB) ListApplicationsForUser(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_offer_id, user_id, resume_id, status, created_at, updated_at
		 FROM applications WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

func scanApplications(rows pgx.Rows) ([]Application, error) {
	var apps []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobOfferID, &a.UserID, &a.ResumeID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// ApplicationsForRecruiter retrieves applications against any of the recruiter's
// job offers (regardless of offer status) whose creation time falls inside the
// inclusive [from, to] window, joined with applicant and offer details.
// Rows come back in no particular order; the weekly report does not sort.
func (db *DB) ApplicationsForRecruiter(ctx context.Context, recruiterID uuid.UUID, from, to time.Time) ([]ApplicationRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT u.name, u.email, o.title, a.status, a.created_at
		 FROM applications a
		 JOIN job_offers o ON o.id = a.job_offer_id
		 JOIN users u ON u.id = a.user_id
		 WHERE o.recruiter_id = $1
		   AND a.created_at >= $2
		   AND a.created_at <= $3`,
		recruiterID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate applications: %w", err)
	}
	defer rows.Close()
	return scanApplicationRecords(rows)
}

// ExportApplicationsForRecruiter retrieves every application against the
// recruiter's job offers with no time window, newest first. Backs the on-demand
// export endpoint; the newest-first ordering is intentional there even though
// the weekly report leaves order unspecified.
func (db *DB) ExportApplicationsForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]ApplicationRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT u.name, u.email, o.title, a.status, a.created_at
		 FROM applications a
		 JOIN job_offers o ON o.id = a.job_offer_id
		 JOIN users u ON u.id = a.user_id
		 WHERE o.recruiter_id = $1
		 ORDER BY a.created_at DESC`,
		recruiterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to export applications: %w", err)
	}
	defer rows.Close()
	return scanApplicationRecords(rows)
}

func scanApplicationRecords(rows pgx.Rows) ([]ApplicationRecord, error) {
	var records []ApplicationRecord
	for rows.Next() {
		var r ApplicationRecord
		if err := rows.Scan(&r.CandidateName, &r.Email, &r.JobTitle, &r.Status, &r.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application record: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}
