package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobOfferColumns = `id, recruiter_id, title, description, COALESCE(category, ''),
	COALESCE(location, ''), COALESCE(contract_type, ''), status, created_at, updated_at`

// CreateJobOffer creates a new job offer and returns its ID
func (db *DB) CreateJobOffer(ctx context.Context, offer *JobOffer) (uuid.UUID, error) {
	status := offer.Status
	if status == "" {
		status = OfferStatusActive
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_offers (recruiter_id, title, description, category, location, contract_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		offer.RecruiterID, offer.Title, offer.Description, offer.Category, offer.Location, offer.ContractType, status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job offer: %w", err)
	}
	return id, nil
}

// GetJobOffer retrieves a job offer by ID
func (db *DB) GetJobOffer(ctx context.Context, offerID uuid.UUID) (*JobOffer, error) {
	var o JobOffer
	err := db.pool.QueryRow(ctx,
		`SELECT `+jobOfferColumns+` FROM job_offers WHERE id = $1`, offerID,
	).Scan(&o.ID, &o.RecruiterID, &o.Title, &o.Description, &o.Category,
		&o.Location, &o.ContractType, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job offer: %w", err)
	}
	return &o, nil
}

// UpdateJobOffer updates the mutable fields of a job offer
func (db *DB) UpdateJobOffer(ctx context.Context, offer *JobOffer) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_offers
		 SET title = $1, description = $2, category = $3, location = $4,
		     contract_type = $5, status = $6, updated_at = NOW()
		 WHERE id = $7`,
		offer.Title, offer.Description, offer.Category, offer.Location,
		offer.ContractType, offer.Status, offer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job offer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job offer not found: %s", offer.ID)
	}
	return nil
}

// DeleteJobOffer deletes a job offer and its applications (via cascade)
func (db *DB) DeleteJobOffer(ctx context.Context, offerID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_offers WHERE id = $1`, offerID)
	if err != nil {
		return fmt.Errorf("failed to delete job offer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job offer not found: %s", offerID)
	}
	return nil
}

// JobOfferFilters holds optional filters for listing job offers
type JobOfferFilters struct {
	Category     string
	Location     string
	ContractType string
	Status       string
	RecruiterID  uuid.UUID
	Limit        int
}

// ListJobOffers retrieves job offers with optional filters
func (db *DB) ListJobOffers(ctx context.Context, filters JobOfferFilters) ([]JobOffer, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + jobOfferColumns + ` FROM job_offers WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filters.Category)
		argNum++
	}
	if filters.Location != "" {
		query += fmt.Sprintf(" AND location = $%d", argNum)
		args = append(args, filters.Location)
		argNum++
	}
	if filters.ContractType != "" {
		query += fmt.Sprintf(" AND contract_type = $%d", argNum)
		args = append(args, filters.ContractType)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.RecruiterID != uuid.Nil {
		query += fmt.Sprintf(" AND recruiter_id = $%d", argNum)
		args = append(args, filters.RecruiterID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job offers: %w", err)
	}
	defer rows.Close()

	var offers []JobOffer
	for rows.Next() {
		var o JobOffer
		if err := rows.Scan(&o.ID, &o.RecruiterID, &o.Title, &o.Description, &o.Category,
			&o.Location, &o.ContractType, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, nil
}
