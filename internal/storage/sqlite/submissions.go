package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// CreateSubmission appends an immutable submission record with its
// member snapshot.
func (s *SQLiteStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.SubmittedAt == 0 {
		sub.SubmittedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO submissions (id, subject, project, group_name, title, kind, value, submitted_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		sub.ID, sub.Scope.Subject, sub.Scope.Project, sub.GroupName, sub.Title, string(sub.Kind), sub.Value, sub.SubmittedAt,
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("submission by %q in %s: %w", sub.GroupName, sub.Scope, storage.ErrExists)
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	for i, member := range sub.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO submission_members (submission_id, username, position) VALUES (?, ?, ?)",
			sub.ID, member, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert submission member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSubmission retrieves a submission by ID.
func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	sub := &models.Submission{}
	var kind string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, subject, project, group_name, title, kind, value, submitted_at FROM submissions WHERE id = ?",
		id,
	).Scan(&sub.ID, &sub.Scope.Subject, &sub.Scope.Project, &sub.GroupName, &sub.Title, &kind, &sub.Value, &sub.SubmittedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission %q: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	sub.Kind = models.DeliverableKind(kind)

	members, err := s.submissionMembers(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	sub.Members = members
	return sub, nil
}

// ListSubmissions returns a scope's submissions in insertion order.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, scope models.Scope) ([]*models.Submission, error) {
	return s.querySubmissions(ctx,
		"SELECT id, subject, project, group_name, title, kind, value, submitted_at FROM submissions WHERE subject = ? AND project = ? ORDER BY rowid",
		scope.Subject, scope.Project,
	)
}

// ListSubmissionsBySubject returns a subject's submissions across all
// scopes in insertion order.
func (s *SQLiteStore) ListSubmissionsBySubject(ctx context.Context, subject string) ([]*models.Submission, error) {
	return s.querySubmissions(ctx,
		"SELECT id, subject, project, group_name, title, kind, value, submitted_at FROM submissions WHERE subject = ? ORDER BY rowid",
		subject,
	)
}

func (s *SQLiteStore) querySubmissions(ctx context.Context, query string, args ...any) ([]*models.Submission, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		sub := &models.Submission{}
		var kind string
		if err := rows.Scan(&sub.ID, &sub.Scope.Subject, &sub.Scope.Project, &sub.GroupName, &sub.Title, &kind, &sub.Value, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.Kind = models.DeliverableKind(kind)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	for _, sub := range subs {
		members, err := s.submissionMembers(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		sub.Members = members
	}
	return subs, nil
}

func (s *SQLiteStore) submissionMembers(ctx context.Context, submissionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username FROM submission_members WHERE submission_id = ? ORDER BY position",
		submissionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan submission member: %w", err)
		}
		members = append(members, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submission members: %w", err)
	}
	return members, nil
}

// PutGrade creates or overwrites the grade for a submission.
func (s *SQLiteStore) PutGrade(ctx context.Context, grade *models.Grade) error {
	if grade.GradedAt == 0 {
		grade.GradedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grades (submission_id, marks, feedback, graded_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(submission_id) DO UPDATE SET marks = excluded.marks, feedback = excluded.feedback, graded_at = excluded.graded_at`,
		grade.SubmissionID, grade.Marks, grade.Feedback, grade.GradedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put grade: %w", err)
	}
	return nil
}

// GetGrade retrieves the grade for a submission.
func (s *SQLiteStore) GetGrade(ctx context.Context, submissionID string) (*models.Grade, error) {
	grade := &models.Grade{}
	err := s.db.QueryRowContext(ctx,
		"SELECT submission_id, marks, feedback, graded_at FROM grades WHERE submission_id = ?",
		submissionID,
	).Scan(&grade.SubmissionID, &grade.Marks, &grade.Feedback, &grade.GradedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("grade for %q: %w", submissionID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grade: %w", err)
	}
	return grade, nil
}
