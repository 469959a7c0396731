package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// GradeService owns the mapping from submission identity to marks and
// feedback. Grades are written only on the teacher's behalf; saving
// again overwrites the prior record (last write wins, no audit trail).
type GradeService struct {
	store storage.Store
}

// NewGradeService creates a new GradeService with the given storage
// backend.
func NewGradeService(store storage.Store) *GradeService {
	return &GradeService{store: store}
}

// Save records marks and feedback against a submission. Marks are
// stored as entered; the 0-100 range is advisory and left to callers.
func (s *GradeService) Save(ctx context.Context, submissionID, marks, feedback string) (*models.Grade, error) {
	if strings.TrimSpace(marks) == "" {
		return nil, ErrEmptyMarks
	}

	if _, err := s.store.GetSubmission(ctx, submissionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	grade := &models.Grade{
		SubmissionID: submissionID,
		Marks:        marks,
		Feedback:     feedback,
	}
	if err := s.store.PutGrade(ctx, grade); err != nil {
		return nil, err
	}

	slog.Info("Grade saved", "submission_id", submissionID, "marks", marks)
	return grade, nil
}

// For retrieves the grade for a submission, or ErrGradeNotFound while
// marks are still pending.
func (s *GradeService) For(ctx context.Context, submissionID string) (*models.Grade, error) {
	grade, err := s.store.GetGrade(ctx, submissionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGradeNotFound
		}
		return nil, err
	}
	return grade, nil
}
