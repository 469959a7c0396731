// Package service implements the portal's domain operations on top of a
// storage.Store: roster management, group formation, submissions,
// project uploads, and grading. Every failure below is a local
// validation error surfaced to the caller; none are fatal, and a
// command either fully applies or is fully rejected.
package service

import "errors"

var (
	// Roster.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrStudentNotFound   = errors.New("student not found")
	ErrAccessDenied      = errors.New("access has been revoked by the teacher")

	// Groups.
	ErrEmptyGroupName     = errors.New("group name must not be empty")
	ErrDuplicateGroupName = errors.New("group name already exists in this scope")
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupFull          = errors.New("group already has the maximum number of members")
	ErrAlreadyInGroup     = errors.New("student already belongs to a group in this scope")
	ErrAlreadyMember      = errors.New("student is already a member of this group")
	ErrNotMember          = errors.New("student is not a member of this group")
	ErrNotInGroup         = errors.New("student does not belong to any group in this scope")

	// Submissions.
	ErrNotLeader          = errors.New("only the group leader may submit")
	ErrAlreadySubmitted   = errors.New("group has already submitted for this scope")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrMissingValue       = errors.New("a file reference or URL is required")
	ErrSubmissionNotFound = errors.New("submission not found")

	// Projects.
	ErrDuplicateProject = errors.New("project title already exists in this subject")
	ErrProjectNotFound  = errors.New("project not found")

	// Grades.
	ErrEmptyMarks    = errors.New("marks must not be empty")
	ErrGradeNotFound = errors.New("no grade recorded for this submission")
)
