package models

// Submission is the immutable record of a group's single deliverable
// for a scope. Records are append-only: membership churn or group
// deletion after the fact never changes who handed the work in.
type Submission struct {
	// ID is the stable, assigned identifier for the submission (UUID
	// format). Grades are keyed by it.
	ID string

	// Scope the submission was made in.
	Scope Scope

	// GroupName is the name of the submitting group at submission time.
	GroupName string

	// Title is the submission title supplied by the leader.
	Title string

	// Kind says whether Value is a file reference or a URL.
	Kind DeliverableKind

	// Value is the opaque deliverable payload.
	Value string

	// Members is a snapshot of the group's members at submission time.
	Members []string

	// SubmittedAt is the Unix timestamp when the submission was made.
	SubmittedAt int64
}
