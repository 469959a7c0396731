package models

import "fmt"

// Scope identifies the unit groups and submissions are partitioned by:
// a subject plus an optional project title. An empty Project means
// subject-level grouping ("no project selected"); because Scope is a
// struct key rather than a concatenated string, a real project can
// never collide with the no-project case.
type Scope struct {
	// Subject is the subject identifier (e.g. "Operating Systems").
	Subject string

	// Project is the project title within the subject, or empty for
	// subject-only grouping.
	Project string
}

// SubjectScope returns the project-less scope for a subject.
func SubjectScope(subject string) Scope {
	return Scope{Subject: subject}
}

// ProjectScope returns the scope for a specific project in a subject.
func ProjectScope(subject, project string) Scope {
	return Scope{Subject: subject, Project: project}
}

// String renders the scope for logs.
func (s Scope) String() string {
	if s.Project == "" {
		return fmt.Sprintf("%s (no project)", s.Subject)
	}
	return fmt.Sprintf("%s/%s", s.Subject, s.Project)
}
