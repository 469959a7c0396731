// Package memory provides the default in-memory implementation of the
// storage.Store interface. All tables live in one mutex-guarded struct;
// every record that crosses the boundary is deep-copied, so callers
// holding a returned model never observe (or cause) a partial update.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with plain maps and slices.
type MemoryStore struct {
	mu sync.RWMutex

	students     map[string]*models.Student
	studentOrder []string

	projects map[string][]*models.Project // subject -> creation order

	groups map[models.Scope][]*models.Group // scope -> creation order

	submissions []*models.Submission // global insertion order
	subsByID    map[string]*models.Submission

	grades map[string]*models.Grade // submission ID -> grade
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		students: make(map[string]*models.Student),
		projects: make(map[string][]*models.Project),
		groups:   make(map[models.Scope][]*models.Group),
		subsByID: make(map[string]*models.Submission),
		grades:   make(map[string]*models.Grade),
	}
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// CreateStudent persists a new roster entry.
func (s *MemoryStore) CreateStudent(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.Username]; ok {
		return fmt.Errorf("student %q: %w", student.Username, storage.ErrExists)
	}
	if student.CreatedAt == 0 {
		student.CreatedAt = time.Now().Unix()
	}
	s.students[student.Username] = copyStudent(student)
	s.studentOrder = append(s.studentOrder, student.Username)
	return nil
}

// GetStudent retrieves a roster entry by username.
func (s *MemoryStore) GetStudent(_ context.Context, username string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[username]
	if !ok {
		return nil, fmt.Errorf("student %q: %w", username, storage.ErrNotFound)
	}
	return copyStudent(student), nil
}

// UpdateStudent replaces an existing roster entry.
func (s *MemoryStore) UpdateStudent(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.Username]; !ok {
		return fmt.Errorf("student %q: %w", student.Username, storage.ErrNotFound)
	}
	s.students[student.Username] = copyStudent(student)
	return nil
}

// ListStudents returns all roster entries in creation order.
func (s *MemoryStore) ListStudents(_ context.Context) ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Student, 0, len(s.studentOrder))
	for _, username := range s.studentOrder {
		out = append(out, copyStudent(s.students[username]))
	}
	return out, nil
}

// CreateProject persists a new project.
func (s *MemoryStore) CreateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects[project.Subject] {
		if p.Title == project.Title {
			return fmt.Errorf("project %q in %q: %w", project.Title, project.Subject, storage.ErrExists)
		}
	}
	if project.CreatedAt == 0 {
		project.CreatedAt = time.Now().Unix()
	}
	clone := *project
	s.projects[project.Subject] = append(s.projects[project.Subject], &clone)
	return nil
}

// GetProject retrieves a project by subject and title.
func (s *MemoryStore) GetProject(_ context.Context, subject, title string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects[subject] {
		if p.Title == title {
			clone := *p
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("project %q in %q: %w", title, subject, storage.ErrNotFound)
}

// UpdateProject replaces an existing project.
func (s *MemoryStore) UpdateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.projects[project.Subject]
	for i, p := range list {
		if p.Title == project.Title {
			clone := *project
			list[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("project %q in %q: %w", project.Title, project.Subject, storage.ErrNotFound)
}

// ListProjects returns a subject's projects in creation order.
func (s *MemoryStore) ListProjects(_ context.Context, subject string) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Project, 0, len(s.projects[subject]))
	for _, p := range s.projects[subject] {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

// CreateGroup persists a new group, generating its ID and timestamp.
func (s *MemoryStore) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups[group.Scope] {
		if g.Name == group.Name {
			return fmt.Errorf("group %q in %s: %w", group.Name, group.Scope, storage.ErrExists)
		}
	}
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	s.groups[group.Scope] = append(s.groups[group.Scope], copyGroup(group))
	return nil
}

// GetGroup retrieves a group by scope and name.
func (s *MemoryStore) GetGroup(_ context.Context, scope models.Scope, name string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups[scope] {
		if g.Name == name {
			return copyGroup(g), nil
		}
	}
	return nil, fmt.Errorf("group %q in %s: %w", name, scope, storage.ErrNotFound)
}

// UpdateGroup replaces an existing group's members and leader.
func (s *MemoryStore) UpdateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.groups[group.Scope]
	for i, g := range list {
		if g.Name == group.Name {
			list[i] = copyGroup(group)
			return nil
		}
	}
	return fmt.Errorf("group %q in %s: %w", group.Name, group.Scope, storage.ErrNotFound)
}

// DeleteGroup removes a group from its scope.
func (s *MemoryStore) DeleteGroup(_ context.Context, scope models.Scope, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.groups[scope]
	for i, g := range list {
		if g.Name == name {
			s.groups[scope] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("group %q in %s: %w", name, scope, storage.ErrNotFound)
}

// ListGroups returns a scope's groups in creation order.
func (s *MemoryStore) ListGroups(_ context.Context, scope models.Scope) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Group, 0, len(s.groups[scope]))
	for _, g := range s.groups[scope] {
		out = append(out, copyGroup(g))
	}
	return out, nil
}

// CreateSubmission appends an immutable submission record.
func (s *MemoryStore) CreateSubmission(_ context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.submissions {
		if existing.Scope == sub.Scope && existing.GroupName == sub.GroupName {
			return fmt.Errorf("submission by %q in %s: %w", sub.GroupName, sub.Scope, storage.ErrExists)
		}
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.SubmittedAt == 0 {
		sub.SubmittedAt = time.Now().Unix()
	}
	clone := copySubmission(sub)
	s.submissions = append(s.submissions, clone)
	s.subsByID[clone.ID] = clone
	return nil
}

// GetSubmission retrieves a submission by ID.
func (s *MemoryStore) GetSubmission(_ context.Context, id string) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subsByID[id]
	if !ok {
		return nil, fmt.Errorf("submission %q: %w", id, storage.ErrNotFound)
	}
	return copySubmission(sub), nil
}

// ListSubmissions returns a scope's submissions in insertion order.
func (s *MemoryStore) ListSubmissions(_ context.Context, scope models.Scope) ([]*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Submission
	for _, sub := range s.submissions {
		if sub.Scope == scope {
			out = append(out, copySubmission(sub))
		}
	}
	return out, nil
}

// ListSubmissionsBySubject returns a subject's submissions across all
// scopes in insertion order.
func (s *MemoryStore) ListSubmissionsBySubject(_ context.Context, subject string) ([]*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Submission
	for _, sub := range s.submissions {
		if sub.Scope.Subject == subject {
			out = append(out, copySubmission(sub))
		}
	}
	return out, nil
}

// PutGrade creates or overwrites the grade for a submission.
func (s *MemoryStore) PutGrade(_ context.Context, grade *models.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if grade.GradedAt == 0 {
		grade.GradedAt = time.Now().Unix()
	}
	clone := *grade
	s.grades[grade.SubmissionID] = &clone
	return nil
}

// GetGrade retrieves the grade for a submission.
func (s *MemoryStore) GetGrade(_ context.Context, submissionID string) (*models.Grade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grade, ok := s.grades[submissionID]
	if !ok {
		return nil, fmt.Errorf("grade for %q: %w", submissionID, storage.ErrNotFound)
	}
	clone := *grade
	return &clone, nil
}

func copyStudent(in *models.Student) *models.Student {
	out := *in
	out.Subjects = append([]string(nil), in.Subjects...)
	return &out
}

func copyGroup(in *models.Group) *models.Group {
	out := *in
	out.Members = append([]string(nil), in.Members...)
	return &out
}

func copySubmission(in *models.Submission) *models.Submission {
	out := *in
	out.Members = append([]string(nil), in.Members...)
	return &out
}
