// Package report implements the weekly application reporting pipeline:
// scheduler fan-out, per-recruiter report generation, and artifact lookup.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/storage"
)

// prefix is the blob namespace all report artifacts live under.
const prefix = "reports/"

// windowDays is the aggregation window length of the weekly report.
const windowDays = 7

// Directory resolves recruiter identities. Implemented by *db.DB.
type Directory interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	ListRecruiters(ctx context.Context) ([]db.User, error)
}

// Aggregator retrieves application records for a recruiter inside a time
// window. Implemented by *db.DB.
type Aggregator interface {
	ApplicationsForRecruiter(ctx context.Context, recruiterID uuid.UUID, from, to time.Time) ([]db.ApplicationRecord, error)
}

// ArtifactPath returns the deterministic blob path for a recruiter's report
// generated on the given date. Same-day re-runs collapse onto one artifact.
func ArtifactPath(recruiterID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%sweekly_report_%s_recruiter_%s.csv", prefix, date.Format("2006-01-02"), recruiterID)
}

// Generator produces one weekly report artifact per execution. It is the
// worker-side unit of the pipeline: aggregate, render, store.
type Generator struct {
	directory  Directory
	aggregator Aggregator
	store      storage.Store
	now        func() time.Time
}

// NewGenerator creates a Generator with its collaborators injected.
func NewGenerator(directory Directory, aggregator Aggregator, store storage.Store) *Generator {
	return &Generator{
		directory:  directory,
		aggregator: aggregator,
		store:      store,
		now:        time.Now,
	}
}

// Execute generates the weekly report for one recruiter. A missing user or a
// plain candidate is a silent no-op, not an error: background jobs skip
// quietly where interactive calls would reject. Aggregation or store failures
// fail the job as a unit with no partial artifact.
func (g *Generator) Execute(ctx context.Context, recruiterID uuid.UUID) error {
	user, err := g.directory.GetUser(ctx, recruiterID)
	if err != nil {
		return fmt.Errorf("failed to resolve recruiter %s: %w", recruiterID, err)
	}
	if user == nil || !user.IsRecruiter() {
		return nil
	}

	// Window is anchored at execution time, not enqueue time; jobs may run
	// at arbitrary delay after dispatch.
	now := g.now()
	from := now.AddDate(0, 0, -windowDays)

	records, err := g.aggregator.ApplicationsForRecruiter(ctx, recruiterID, from, now)
	if err != nil {
		return fmt.Errorf("failed to aggregate applications for recruiter %s: %w", recruiterID, err)
	}

	artifact := Render(records)
	path := ArtifactPath(recruiterID, now)
	if err := g.store.Put(ctx, path, bytes.NewReader(artifact)); err != nil {
		return fmt.Errorf("failed to store report %s: %w", path, err)
	}

	// In a real deployment an email with the report would go out here.
	// Delivery is intentionally a logged no-op.
	log.Printf("[report] weekly application report generated for recruiter %s with %d applications", user.Email, len(records))

	return nil
}
