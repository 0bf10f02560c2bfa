package report

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/jobboard/internal/queue"
)

// Scheduler enumerates recruiters and fans out one report task per identity.
// It hands work to the queue and never waits on completion.
type Scheduler struct {
	directory Directory
	queue     queue.Enqueuer
}

// NewScheduler creates a Scheduler with its collaborators injected.
func NewScheduler(directory Directory, q queue.Enqueuer) *Scheduler {
	return &Scheduler{directory: directory, queue: q}
}

// DispatchWeekly enqueues one report task for every recruiter and admin and
// returns the count enqueued. A directory failure aborts with zero tasks.
// An enqueue failure midway returns the count so far; tasks already enqueued
// stay enqueued. Re-running while prior tasks are in flight produces
// duplicate tasks for the same recruiter; that is a deliberate property of
// the dispatch, not a defect.
func (s *Scheduler) DispatchWeekly(ctx context.Context) (int, error) {
	recruiters, err := s.directory.ListRecruiters(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recruiters: %w", err)
	}

	count := 0
	for _, r := range recruiters {
		if err := s.queue.Enqueue(ctx, queue.Task{RecruiterID: r.ID}); err != nil {
			return count, fmt.Errorf("failed to enqueue report task for recruiter %s: %w", r.ID, err)
		}
		count++
	}

	log.Printf("[report] weekly report tasks dispatched for %d recruiters", count)
	return count, nil
}
