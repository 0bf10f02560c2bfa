package report

import "errors"

// ErrNoReportFound indicates no weekly report artifact exists for the
// recruiter. Surfaced as not-found, not as a failure.
var ErrNoReportFound = errors.New("no weekly reports found")

// ErrNotARecruiter indicates the caller lacks the recruiter or admin role.
// Interactive surfaces reject with this error; inside a background job the
// same condition is a silent no-op instead.
var ErrNotARecruiter = errors.New("only recruiters can access reports")
