package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// SubmissionService owns the append-only submission ledger: one
// deliverable per group per scope, handed in by the group's leader.
// Records are immutable and never deleted, even when the group later
// dissolves.
type SubmissionService struct {
	store storage.Store
	locks *ScopeLocks
}

// NewSubmissionService creates a new SubmissionService with the given
// storage backend and scope-lock table.
func NewSubmissionService(store storage.Store, locks *ScopeLocks) *SubmissionService {
	return &SubmissionService{store: store, locks: locks}
}

// Submit appends the group's deliverable for the scope. The submitter
// must be the group's current leader, and the record snapshots the
// membership as of this moment, so later churn does not change who
// handed the work in.
func (s *SubmissionService) Submit(ctx context.Context, scope models.Scope, groupName, submitter, title string, kind models.DeliverableKind, value string) (*models.Submission, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(value) == "" {
		return nil, ErrMissingValue
	}

	unlock := s.locks.Lock(scope)
	defer unlock()

	group, err := s.store.GetGroup(ctx, scope, groupName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if group.Leader == "" || group.Leader != submitter {
		return nil, ErrNotLeader
	}

	sub := &models.Submission{
		Scope:     scope,
		GroupName: group.Name,
		Title:     title,
		Kind:      kind,
		Value:     value,
		Members:   append([]string(nil), group.Members...),
	}
	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}

	slog.Info("Submission recorded",
		"scope", scope,
		"group", group.Name,
		"submission_id", sub.ID,
		"kind", sub.Kind,
	)
	return sub, nil
}

// ForScope returns the scope's submissions in insertion order.
func (s *SubmissionService) ForScope(ctx context.Context, scope models.Scope) ([]*models.Submission, error) {
	return s.store.ListSubmissions(ctx, scope)
}

// ForSubject returns every submission under a subject, across all of
// its scopes, in insertion order.
func (s *SubmissionService) ForSubject(ctx context.Context, subject string) ([]*models.Submission, error) {
	return s.store.ListSubmissionsBySubject(ctx, subject)
}

// Get retrieves a submission by its stable ID.
func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}
