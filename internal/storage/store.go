// Package storage provides abstractions for the portal's shared tables.
package storage

import (
	"context"
	"errors"

	"github.com/psahay/classwork/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrExists is returned when a create would violate a uniqueness
	// constraint (username, group name in scope, project title in
	// subject, one submission per group per scope).
	ErrExists = errors.New("record already exists")
)

// Store defines the interface for the portal's storage operations.
// This abstraction allows swapping storage backends (in-memory, SQLite)
// without changing the service layer. Stores are dumb tables: domain
// invariants live in the services; stores only enforce key uniqueness
// and hand out defensive copies.
type Store interface {
	// CreateStudent persists a new roster entry, populating CreatedAt.
	// Returns ErrExists if the username is taken.
	CreateStudent(ctx context.Context, student *models.Student) error

	// GetStudent retrieves a roster entry by username.
	GetStudent(ctx context.Context, username string) (*models.Student, error)

	// UpdateStudent replaces an existing roster entry.
	UpdateStudent(ctx context.Context, student *models.Student) error

	// ListStudents returns all roster entries in creation order.
	ListStudents(ctx context.Context) ([]*models.Student, error)

	// CreateProject persists a new project, populating CreatedAt.
	// Returns ErrExists if the title is taken within the subject.
	CreateProject(ctx context.Context, project *models.Project) error

	// GetProject retrieves a project by subject and title.
	GetProject(ctx context.Context, subject, title string) (*models.Project, error)

	// UpdateProject replaces an existing project.
	UpdateProject(ctx context.Context, project *models.Project) error

	// ListProjects returns a subject's projects in creation order.
	ListProjects(ctx context.Context, subject string) ([]*models.Project, error)

	// CreateGroup persists a new group, populating ID and CreatedAt.
	// Returns ErrExists if the name is taken within the scope.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by scope and name.
	GetGroup(ctx context.Context, scope models.Scope, name string) (*models.Group, error)

	// UpdateGroup replaces an existing group's members and leader.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group. Submissions are unaffected.
	DeleteGroup(ctx context.Context, scope models.Scope, name string) error

	// ListGroups returns a scope's groups in creation order.
	ListGroups(ctx context.Context, scope models.Scope) ([]*models.Group, error)

	// CreateSubmission appends an immutable submission record,
	// populating ID and SubmittedAt (when unset). Returns ErrExists if
	// the group already submitted for the scope.
	CreateSubmission(ctx context.Context, sub *models.Submission) error

	// GetSubmission retrieves a submission by ID.
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)

	// ListSubmissions returns a scope's submissions in insertion order.
	ListSubmissions(ctx context.Context, scope models.Scope) ([]*models.Submission, error)

	// ListSubmissionsBySubject returns every submission under a subject,
	// across all of its scopes, in insertion order.
	ListSubmissionsBySubject(ctx context.Context, subject string) ([]*models.Submission, error)

	// PutGrade creates or overwrites the grade for a submission,
	// populating GradedAt.
	PutGrade(ctx context.Context, grade *models.Grade) error

	// GetGrade retrieves the grade for a submission, if any.
	GetGrade(ctx context.Context, submissionID string) (*models.Grade, error)

	// Close releases any resources held by the store.
	Close() error
}
