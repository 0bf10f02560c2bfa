package report

import (
	"strings"

	"github.com/jonathan/jobboard/internal/db"
)

// csvHeader is the fixed header row of every application export.
const csvHeader = "Candidate Name,Email,Job Title,Status,Application Date"

// dateLayout formats application timestamps in system-local time.
const dateLayout = "2006-01-02 15:04:05"

// Render serializes application records into the CSV artifact format.
// Every field is wrapped in double quotes; embedded quotes and commas are
// NOT escaped, matching the historical report format consumers parse.
// Zero records produce a header-only artifact.
func Render(records []db.ApplicationRecord) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, r := range records {
		b.WriteString(`"` + r.CandidateName + `",`)
		b.WriteString(`"` + r.Email + `",`)
		b.WriteString(`"` + r.JobTitle + `",`)
		b.WriteString(`"` + r.Status + `",`)
		b.WriteString(`"` + r.AppliedAt.Format(dateLayout) + `"`)
		b.WriteByte('\n')
	}

	return []byte(b.String())
}
