package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFileBackedStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "classwork.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.CreateStudent(ctx, &models.Student{Username: "student1", SecretHash: "hash", Access: true}); err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if _, err := store.GetStudent(ctx, "student1"); err != nil {
		t.Errorf("GetStudent failed: %v", err)
	}
}

func TestStudentRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	student := &models.Student{
		Username:   "student1",
		SecretHash: "hash",
		Access:     true,
		Subjects:   []string{"CS101", "MATH201"},
	}
	if err := store.CreateStudent(ctx, student); err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if student.CreatedAt == 0 {
		t.Error("expected created_at to be stamped")
	}

	got, err := store.GetStudent(ctx, "student1")
	if err != nil {
		t.Fatalf("GetStudent failed: %v", err)
	}
	if len(got.Subjects) != 2 || got.Subjects[0] != "CS101" || got.Subjects[1] != "MATH201" {
		t.Errorf("subjects: expected [CS101 MATH201], got %v", got.Subjects)
	}

	t.Run("duplicate rejected", func(t *testing.T) {
		err := store.CreateStudent(ctx, &models.Student{Username: "student1", SecretHash: "x"})
		if !errors.Is(err, storage.ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
	})

	t.Run("update persists access and enrollments", func(t *testing.T) {
		got.Access = false
		got.Subjects = []string{"PHYS301"}
		if err := store.UpdateStudent(ctx, got); err != nil {
			t.Fatalf("UpdateStudent failed: %v", err)
		}

		again, err := store.GetStudent(ctx, "student1")
		if err != nil {
			t.Fatalf("GetStudent failed: %v", err)
		}
		if again.Access {
			t.Error("expected access revoked")
		}
		if len(again.Subjects) != 1 || again.Subjects[0] != "PHYS301" {
			t.Errorf("subjects: expected [PHYS301], got %v", again.Subjects)
		}
	})

	t.Run("update of missing student rejected", func(t *testing.T) {
		err := store.UpdateStudent(ctx, &models.Student{Username: "ghost"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestProjectRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	project := &models.Project{
		Subject:     "CS101",
		Title:       "Proj1",
		Description: "Build a portal",
		Kind:        models.KindFile,
		Value:       "spec.pdf",
	}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	t.Run("duplicate title in subject rejected", func(t *testing.T) {
		err := store.CreateProject(ctx, &models.Project{Subject: "CS101", Title: "Proj1", Kind: models.KindURL, Value: "x"})
		if !errors.Is(err, storage.ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
	})

	t.Run("same title allowed in another subject", func(t *testing.T) {
		err := store.CreateProject(ctx, &models.Project{Subject: "MATH201", Title: "Proj1", Kind: models.KindURL, Value: "x"})
		if err != nil {
			t.Errorf("expected create to succeed, got %v", err)
		}
	})

	t.Run("deadline update", func(t *testing.T) {
		project.Deadline = "2026-03-15T23:59"
		if err := store.UpdateProject(ctx, project); err != nil {
			t.Fatalf("UpdateProject failed: %v", err)
		}
		got, err := store.GetProject(ctx, "CS101", "Proj1")
		if err != nil {
			t.Fatalf("GetProject failed: %v", err)
		}
		if got.Deadline != "2026-03-15T23:59" {
			t.Errorf("deadline: expected '2026-03-15T23:59', got %q", got.Deadline)
		}
	})

	t.Run("list is subject scoped", func(t *testing.T) {
		projects, err := store.ListProjects(ctx, "CS101")
		if err != nil {
			t.Fatalf("ListProjects failed: %v", err)
		}
		if len(projects) != 1 {
			t.Errorf("expected 1 project for CS101, got %d", len(projects))
		}
	})
}

func TestGroupRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	scope := models.ProjectScope("CS101", "Proj1")

	group := &models.Group{Scope: scope, Name: "Alpha", Members: []string{"student1", "student2"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Error("expected generated group ID")
	}

	got, err := store.GetGroup(ctx, scope, "Alpha")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(got.Members) != 2 || got.Members[0] != "student1" || got.Members[1] != "student2" {
		t.Errorf("members: expected [student1 student2], got %v", got.Members)
	}
	if got.Leader != "" {
		t.Errorf("expected no leader, got %q", got.Leader)
	}

	t.Run("duplicate name in scope rejected", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Scope: scope, Name: "Alpha"})
		if !errors.Is(err, storage.ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
	})

	t.Run("same name allowed in subject-only scope", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Scope: models.SubjectScope("CS101"), Name: "Alpha"})
		if err != nil {
			t.Errorf("expected create to succeed, got %v", err)
		}
	})

	t.Run("update replaces leader and members", func(t *testing.T) {
		got.Leader = "student2"
		got.Members = []string{"student2"}
		if err := store.UpdateGroup(ctx, got); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}
		again, err := store.GetGroup(ctx, scope, "Alpha")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if again.Leader != "student2" || len(again.Members) != 1 {
			t.Errorf("unexpected group after update: leader=%q members=%v", again.Leader, again.Members)
		}
	})

	t.Run("delete removes group and members", func(t *testing.T) {
		if err := store.DeleteGroup(ctx, scope, "Alpha"); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, scope, "Alpha"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteGroup(ctx, scope, "Alpha"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
	})
}

func TestSubmissionAndGradeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	scope := models.ProjectScope("CS101", "Proj1")

	sub := &models.Submission{
		Scope:     scope,
		GroupName: "Alpha",
		Title:     "Report",
		Kind:      models.KindURL,
		Value:     "https://example.com/report",
		Members:   []string{"student1", "student2"},
	}
	if err := store.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}
	if sub.ID == "" || sub.SubmittedAt == 0 {
		t.Errorf("expected generated ID and timestamp, got id=%q submitted_at=%d", sub.ID, sub.SubmittedAt)
	}

	got, err := store.GetSubmission(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetSubmission failed: %v", err)
	}
	if len(got.Members) != 2 {
		t.Errorf("members snapshot: expected 2, got %v", got.Members)
	}
	if got.Scope != scope {
		t.Errorf("scope: expected %v, got %v", scope, got.Scope)
	}

	t.Run("one submission per group per scope", func(t *testing.T) {
		err := store.CreateSubmission(ctx, &models.Submission{
			Scope: scope, GroupName: "Alpha", Title: "Again", Kind: models.KindFile, Value: "v2.zip",
		})
		if !errors.Is(err, storage.ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
	})

	t.Run("subject listing spans scopes", func(t *testing.T) {
		other := &models.Submission{
			Scope: models.SubjectScope("CS101"), GroupName: "Beta", Title: "Notes", Kind: models.KindFile, Value: "notes.pdf",
		}
		if err := store.CreateSubmission(ctx, other); err != nil {
			t.Fatalf("CreateSubmission failed: %v", err)
		}
		subs, err := store.ListSubmissionsBySubject(ctx, "CS101")
		if err != nil {
			t.Fatalf("ListSubmissionsBySubject failed: %v", err)
		}
		if len(subs) != 2 {
			t.Errorf("expected 2 submissions, got %d", len(subs))
		}
	})

	t.Run("grade upsert", func(t *testing.T) {
		if err := store.PutGrade(ctx, &models.Grade{SubmissionID: sub.ID, Marks: "90", Feedback: "good"}); err != nil {
			t.Fatalf("PutGrade failed: %v", err)
		}
		if err := store.PutGrade(ctx, &models.Grade{SubmissionID: sub.ID, Marks: "95", Feedback: "better"}); err != nil {
			t.Fatalf("PutGrade (overwrite) failed: %v", err)
		}
		grade, err := store.GetGrade(ctx, sub.ID)
		if err != nil {
			t.Fatalf("GetGrade failed: %v", err)
		}
		if grade.Marks != "95" || grade.Feedback != "better" {
			t.Errorf("expected 95/'better', got %q/%q", grade.Marks, grade.Feedback)
		}
	})
}
