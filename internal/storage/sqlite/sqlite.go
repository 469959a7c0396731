// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. With the default ":memory:" DSN the tables
// live for the process only, matching the in-memory backend; pointing
// it at a file is useful for poking at a session's state afterwards.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. Pass
// ":memory:" for a process-lifetime database. For file paths the
// parent directories are created and migrations run automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" && !strings.HasPrefix(dbPath, "file:") {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases from being torn
	// down between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateStudent persists a new roster entry with its enrollments.
func (s *SQLiteStore) CreateStudent(ctx context.Context, student *models.Student) error {
	if student.CreatedAt == 0 {
		student.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	access := 0
	if student.Access {
		access = 1
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO students (username, secret_hash, access, created_at) VALUES (?, ?, ?, ?)",
		student.Username, student.SecretHash, access, student.CreatedAt,
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("student %q: %w", student.Username, storage.ErrExists)
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}

	for i, subject := range student.Subjects {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO enrollments (username, subject, position) VALUES (?, ?, ?)",
			student.Username, subject, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert enrollment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetStudent retrieves a roster entry by username.
func (s *SQLiteStore) GetStudent(ctx context.Context, username string) (*models.Student, error) {
	student := &models.Student{}
	var access int
	err := s.db.QueryRowContext(ctx,
		"SELECT username, secret_hash, access, created_at FROM students WHERE username = ?",
		username,
	).Scan(&student.Username, &student.SecretHash, &access, &student.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("student %q: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	student.Access = access != 0

	subjects, err := s.studentSubjects(ctx, username)
	if err != nil {
		return nil, err
	}
	student.Subjects = subjects
	return student, nil
}

// UpdateStudent replaces an existing roster entry.
func (s *SQLiteStore) UpdateStudent(ctx context.Context, student *models.Student) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	access := 0
	if student.Access {
		access = 1
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE students SET secret_hash = ?, access = ? WHERE username = ?",
		student.SecretHash, access, student.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("student %q: %w", student.Username, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM enrollments WHERE username = ?", student.Username); err != nil {
		return fmt.Errorf("failed to clear enrollments: %w", err)
	}
	for i, subject := range student.Subjects {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO enrollments (username, subject, position) VALUES (?, ?, ?)",
			student.Username, subject, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert enrollment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListStudents returns all roster entries in creation order.
func (s *SQLiteStore) ListStudents(ctx context.Context) ([]*models.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username, secret_hash, access, created_at FROM students ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		var access int
		if err := rows.Scan(&student.Username, &student.SecretHash, &access, &student.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		student.Access = access != 0
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}

	for _, student := range students {
		subjects, err := s.studentSubjects(ctx, student.Username)
		if err != nil {
			return nil, err
		}
		student.Subjects = subjects
	}
	return students, nil
}

func (s *SQLiteStore) studentSubjects(ctx context.Context, username string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT subject FROM enrollments WHERE username = ? ORDER BY position",
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollments: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enrollments: %w", err)
	}
	return subjects, nil
}

// CreateProject persists a new project.
func (s *SQLiteStore) CreateProject(ctx context.Context, project *models.Project) error {
	if project.CreatedAt == 0 {
		project.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO projects (subject, title, description, kind, value, deadline, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		project.Subject, project.Title, project.Description, string(project.Kind), project.Value, project.Deadline, project.CreatedAt,
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("project %q in %q: %w", project.Title, project.Subject, storage.ErrExists)
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by subject and title.
func (s *SQLiteStore) GetProject(ctx context.Context, subject, title string) (*models.Project, error) {
	project := &models.Project{}
	var kind string
	err := s.db.QueryRowContext(ctx,
		"SELECT subject, title, description, kind, value, deadline, created_at FROM projects WHERE subject = ? AND title = ?",
		subject, title,
	).Scan(&project.Subject, &project.Title, &project.Description, &kind, &project.Value, &project.Deadline, &project.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %q in %q: %w", title, subject, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	project.Kind = models.DeliverableKind(kind)
	return project, nil
}

// UpdateProject replaces an existing project.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project *models.Project) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET description = ?, kind = ?, value = ?, deadline = ? WHERE subject = ? AND title = ?",
		project.Description, string(project.Kind), project.Value, project.Deadline, project.Subject, project.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %q in %q: %w", project.Title, project.Subject, storage.ErrNotFound)
	}
	return nil
}

// ListProjects returns a subject's projects in creation order.
func (s *SQLiteStore) ListProjects(ctx context.Context, subject string) ([]*models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT subject, title, description, kind, value, deadline, created_at FROM projects WHERE subject = ? ORDER BY rowid",
		subject,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		var kind string
		if err := rows.Scan(&project.Subject, &project.Title, &project.Description, &kind, &project.Value, &project.Deadline, &project.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		project.Kind = models.DeliverableKind(kind)
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// isConstraintErr reports whether err is a SQLite uniqueness violation.
func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, storage.ErrExists) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}
