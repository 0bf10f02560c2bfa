package report

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportPath(recruiterID uuid.UUID, date string) string {
	return "reports/weekly_report_" + date + "_recruiter_" + recruiterID.String() + ".csv"
}

func TestLocator_NoArtifactsReturnsNotFound(t *testing.T) {
	store := newMemStore()

	_, err := NewLocator(store).Latest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoReportFound)
}

func TestLocator_PicksMostRecentlyModified(t *testing.T) {
	recruiterID := uuid.New()
	store := newMemStore()
	store.setObject(reportPath(recruiterID, "2024-01-01"), "old", time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC))
	store.setObject(reportPath(recruiterID, "2024-01-08"), "new", time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC))

	artifact, err := NewLocator(store).Latest(context.Background(), recruiterID)
	require.NoError(t, err)
	defer artifact.Content.Close()

	assert.Equal(t, "weekly_report_2024-01-08_recruiter_"+recruiterID.String()+".csv", artifact.Name)
	content, err := io.ReadAll(artifact.Content)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestLocator_IgnoresOtherRecruiters(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()
	store := newMemStore()
	store.setObject(reportPath(other, "2024-01-08"), "theirs", time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC))

	_, err := NewLocator(store).Latest(context.Background(), mine)
	assert.ErrorIs(t, err, ErrNoReportFound)
}

// The recruiter id must match as an exact path segment; an id that is a
// prefix of another id must not cross over.
func TestLocator_NoPartialIDMatch(t *testing.T) {
	recruiterID := uuid.New()
	store := newMemStore()
	// A crafted path whose recruiter segment merely ends with our id.
	store.setObject("reports/weekly_report_2024-01-08_recruiter_x"+recruiterID.String()+"-extra.csv",
		"impostor", time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC))

	_, err := NewLocator(store).Latest(context.Background(), recruiterID)
	assert.ErrorIs(t, err, ErrNoReportFound)
}

func TestLocator_IgnoresForeignFilesUnderPrefix(t *testing.T) {
	recruiterID := uuid.New()
	store := newMemStore()
	store.setObject("reports/notes.txt", "junk", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	store.setObject(reportPath(recruiterID, "2024-01-01"), "report", time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC))

	artifact, err := NewLocator(store).Latest(context.Background(), recruiterID)
	require.NoError(t, err)
	defer artifact.Content.Close()
	assert.Equal(t, reportPath(recruiterID, "2024-01-01"), artifact.Path)
}

func TestLocator_TieGoesToFirstInListOrder(t *testing.T) {
	recruiterID := uuid.New()
	when := time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC)
	store := newMemStore()
	store.setObject(reportPath(recruiterID, "2024-01-07"), "seventh", when)
	store.setObject(reportPath(recruiterID, "2024-01-08"), "eighth", when)

	artifact, err := NewLocator(store).Latest(context.Background(), recruiterID)
	require.NoError(t, err)
	defer artifact.Content.Close()

	// memStore lists in path order, so the 01-07 artifact comes first.
	assert.Equal(t, reportPath(recruiterID, "2024-01-07"), artifact.Path)
}

func TestLocator_StoreFailureIsHardError(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("connection reset")

	_, err := NewLocator(store).Latest(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoReportFound)
}
