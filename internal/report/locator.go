package report

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/storage"
)

// Artifact is a stored weekly report opened for download.
type Artifact struct {
	// Name is the base filename, used as the suggested download name.
	Name string
	// Path is the full blob path inside the store.
	Path         string
	LastModified time.Time
	// Content streams the artifact bytes; the caller closes it.
	Content io.ReadCloser
}

// Locator finds the most recent report artifact for a recruiter.
type Locator struct {
	store storage.Store
}

// NewLocator creates a Locator over the given store.
func NewLocator(store storage.Store) *Locator {
	return &Locator{store: store}
}

// Latest returns the recruiter's most recently written report, opened for
// streaming. Matching is an explicit prefix plus exact recruiter-id suffix
// check rather than a glob, so one recruiter's id can never partially match
// another's. Returns ErrNoReportFound when nothing matches; a store failure
// is a distinct hard error. Ties on last-modified go to the first path
// encountered in list order.
func (l *Locator) Latest(ctx context.Context, recruiterID uuid.UUID) (*Artifact, error) {
	objects, err := l.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	suffix := fmt.Sprintf("_recruiter_%s.csv", recruiterID)
	var latest *storage.ObjectInfo
	for i := range objects {
		name := path.Base(objects[i].Path)
		if !strings.HasPrefix(name, "weekly_report_") || !strings.HasSuffix(name, suffix) {
			continue
		}
		if latest == nil || objects[i].LastModified.After(latest.LastModified) {
			latest = &objects[i]
		}
	}
	if latest == nil {
		return nil, ErrNoReportFound
	}

	content, err := l.store.Open(ctx, latest.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report %s: %w", latest.Path, err)
	}

	return &Artifact{
		Name:         path.Base(latest.Path),
		Path:         latest.Path,
		LastModified: latest.LastModified,
		Content:      content,
	}, nil
}
