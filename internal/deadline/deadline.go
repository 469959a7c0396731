// Package deadline computes whether a submission beat its project's
// deadline. It is a pure function over two records: no clock, no store,
// no failure modes.
package deadline

import (
	"time"

	"github.com/psahay/classwork/internal/models"
)

// Status is the deadline verdict for a submission.
type Status string

const (
	OnTime         Status = "On Time"
	MissedDeadline Status = "Missed Deadline"
)

// layouts accepted for project deadlines: what the datetime-local
// widget produces, the same with seconds, and RFC 3339.
var layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Evaluate returns MissedDeadline iff the submission landed strictly
// after the project's deadline. An unset or unparsable deadline always
// yields OnTime (fail-open), as does submitting exactly on the
// deadline.
func Evaluate(sub *models.Submission, project *models.Project) Status {
	if project == nil || project.Deadline == "" {
		return OnTime
	}

	due, ok := parseDeadline(project.Deadline)
	if !ok {
		return OnTime
	}

	if sub.SubmittedAt > due.Unix() {
		return MissedDeadline
	}
	return OnTime
}

func parseDeadline(raw string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
