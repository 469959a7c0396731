package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// ProjectService owns the per-subject project catalog. Projects are
// uploaded by the teacher and never deleted; the deadline is the only
// field mutated in place afterwards.
type ProjectService struct {
	store storage.Store
}

// NewProjectService creates a new ProjectService with the given storage
// backend.
func NewProjectService(store storage.Store) *ProjectService {
	return &ProjectService{store: store}
}

// Upload adds a project to a subject's catalog. The deliverable payload
// is opaque; deadline may be empty for "not set".
func (s *ProjectService) Upload(ctx context.Context, subject, title, description string, kind models.DeliverableKind, value, deadline string) (*models.Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(value) == "" {
		return nil, ErrMissingValue
	}

	project := &models.Project{
		Subject:     subject,
		Title:       title,
		Description: description,
		Kind:        kind,
		Value:       value,
		Deadline:    deadline,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, ErrDuplicateProject
		}
		return nil, err
	}

	slog.Info("Project uploaded", "subject", subject, "title", title, "kind", kind)
	return project, nil
}

// SetDeadline mutates a project's deadline in place. Pass an empty
// string to unset it.
func (s *ProjectService) SetDeadline(ctx context.Context, subject, title, deadline string) error {
	project, err := s.store.GetProject(ctx, subject, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	project.Deadline = deadline
	if err := s.store.UpdateProject(ctx, project); err != nil {
		return err
	}

	slog.Info("Project deadline updated", "subject", subject, "title", title, "deadline", deadline)
	return nil
}

// Get retrieves a project by subject and title.
func (s *ProjectService) Get(ctx context.Context, subject, title string) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, subject, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// List returns a subject's projects in creation order.
func (s *ProjectService) List(ctx context.Context, subject string) ([]*models.Project, error) {
	return s.store.ListProjects(ctx, subject)
}
