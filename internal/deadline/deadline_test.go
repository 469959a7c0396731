package deadline

import (
	"testing"
	"time"

	"github.com/psahay/classwork/internal/models"
)

func TestEvaluate(t *testing.T) {
	due := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)
	project := &models.Project{
		Subject:  "CS101",
		Title:    "Proj1",
		Deadline: due.Format("2006-01-02T15:04"),
	}

	submittedAt := func(ts int64) *models.Submission {
		return &models.Submission{SubmittedAt: ts}
	}

	tests := []struct {
		name    string
		sub     *models.Submission
		project *models.Project
		want    Status
	}{
		{"one second before", submittedAt(due.Unix() - 1), project, OnTime},
		{"exactly on the deadline", submittedAt(due.Unix()), project, OnTime},
		{"one second after", submittedAt(due.Unix() + 1), project, MissedDeadline},
		{"well after", submittedAt(due.Add(48 * time.Hour).Unix()), project, MissedDeadline},
		{"no project record", submittedAt(due.Unix() + 1), nil, OnTime},
		{"no deadline set", submittedAt(due.Unix() + 1), &models.Project{Subject: "CS101", Title: "Proj1"}, OnTime},
		{"unparsable deadline", submittedAt(due.Unix() + 1), &models.Project{Subject: "CS101", Title: "Proj1", Deadline: "next friday"}, OnTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.sub, tt.project); got != tt.want {
				t.Errorf("Evaluate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeadlineLayouts(t *testing.T) {
	due := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)
	late := &models.Submission{SubmittedAt: due.Unix() + 60}

	for _, raw := range []string{
		due.Format("2006-01-02T15:04"),
		due.Format("2006-01-02T15:04:05"),
		due.Format(time.RFC3339),
	} {
		t.Run(raw, func(t *testing.T) {
			project := &models.Project{Subject: "CS101", Title: "Proj1", Deadline: raw}
			if got := Evaluate(late, project); got != MissedDeadline {
				t.Errorf("Evaluate() = %q, want %q", got, MissedDeadline)
			}
		})
	}
}
