package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// RosterService manages student identities, access flags, and subject
// enrollment. Students are provisioned by the teacher and never deleted
// during a session.
type RosterService struct {
	store storage.Store
}

// NewRosterService creates a new RosterService with the given storage
// backend.
func NewRosterService(store storage.Store) *RosterService {
	return &RosterService{store: store}
}

// AddStudent provisions a new student with a bcrypt-hashed secret and
// the given subject enrollments. Access is granted by default.
func (s *RosterService) AddStudent(ctx context.Context, username, secret string, subjects []string) (*models.Student, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	student := &models.Student{
		Username:   username,
		SecretHash: string(hash),
		Access:     true,
		Subjects:   subjects,
	}
	if err := s.store.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	slog.Info("Student added", "username", username, "subjects", len(subjects))
	return student, nil
}

// SetAccess flips a student's access flag. The change is visible to the
// login gate immediately; there is no caching in between.
func (s *RosterService) SetAccess(ctx context.Context, username string, access bool) error {
	student, err := s.store.GetStudent(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	student.Access = access
	if err := s.store.UpdateStudent(ctx, student); err != nil {
		return err
	}

	slog.Info("Student access updated", "username", username, "access", access)
	return nil
}

// IsEnrolled reports whether the student is enrolled in subject.
// Unknown students are simply not enrolled.
func (s *RosterService) IsEnrolled(ctx context.Context, username, subject string) (bool, error) {
	student, err := s.store.GetStudent(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return student.EnrolledIn(subject), nil
}

// Get retrieves a student by username.
func (s *RosterService) Get(ctx context.Context, username string) (*models.Student, error) {
	student, err := s.store.GetStudent(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// List returns the full roster in creation order.
func (s *RosterService) List(ctx context.Context) ([]*models.Student, error) {
	return s.store.ListStudents(ctx)
}
