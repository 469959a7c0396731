package models

// Grade is the marks and feedback a teacher attached to a submission.
// Saving again for the same submission overwrites the prior record;
// there is no audit trail.
type Grade struct {
	// SubmissionID is the submission the grade belongs to.
	SubmissionID string

	// Marks is stored as the string the teacher entered. The 0-100
	// range is advisory and validated by callers, not here.
	Marks string

	// Feedback is optional free text for the group.
	Feedback string

	// GradedAt is the Unix timestamp of the last save.
	GradedAt int64
}
