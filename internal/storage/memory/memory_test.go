package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

func TestStudentIsolation(t *testing.T) {
	store := New()
	ctx := context.Background()

	student := &models.Student{Username: "student1", SecretHash: "hash", Access: true, Subjects: []string{"CS101"}}
	if err := store.CreateStudent(ctx, student); err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}

	got, err := store.GetStudent(ctx, "student1")
	if err != nil {
		t.Fatalf("GetStudent failed: %v", err)
	}

	// Mutating the returned copy must not reach the store.
	got.Access = false
	got.Subjects[0] = "HAX"

	again, err := store.GetStudent(ctx, "student1")
	if err != nil {
		t.Fatalf("GetStudent failed: %v", err)
	}
	if !again.Access {
		t.Error("caller mutation leaked into stored access flag")
	}
	if again.Subjects[0] != "CS101" {
		t.Error("caller mutation leaked into stored subjects")
	}
}

func TestGroupIsolation(t *testing.T) {
	store := New()
	ctx := context.Background()
	scope := models.ProjectScope("CS101", "Proj1")

	group := &models.Group{Scope: scope, Name: "Alpha", Members: []string{"student1"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Error("expected generated group ID")
	}
	if group.CreatedAt == 0 {
		t.Error("expected generated timestamp")
	}

	got, err := store.GetGroup(ctx, scope, "Alpha")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	got.Members = append(got.Members, "intruder")
	got.Leader = "intruder"

	again, err := store.GetGroup(ctx, scope, "Alpha")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(again.Members) != 1 || again.Leader != "" {
		t.Errorf("caller mutation leaked into store: members=%v leader=%q", again.Members, again.Leader)
	}
}

func TestUniquenessErrors(t *testing.T) {
	store := New()
	ctx := context.Background()
	scope := models.SubjectScope("CS101")

	t.Run("duplicate student", func(t *testing.T) {
		if err := store.CreateStudent(ctx, &models.Student{Username: "student1"}); err != nil {
			t.Fatalf("CreateStudent failed: %v", err)
		}
		err := store.CreateStudent(ctx, &models.Student{Username: "student1"})
		if !errors.Is(err, storage.ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
	})

	t.Run("duplicate group name in scope", func(t *testing.T) {
		if err := store.CreateGroup(ctx, &models.Group{Scope: scope, Name: "Alpha"}); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		err := store.CreateGroup(ctx, &models.Group{Scope: scope, Name: "Alpha"})
		if !errors.Is(err, storage.ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
	})

	t.Run("duplicate submission per group per scope", func(t *testing.T) {
		first := &models.Submission{Scope: scope, GroupName: "Alpha", Title: "Report", Kind: models.KindFile, Value: "r.pdf"}
		if err := store.CreateSubmission(ctx, first); err != nil {
			t.Fatalf("CreateSubmission failed: %v", err)
		}
		err := store.CreateSubmission(ctx, &models.Submission{Scope: scope, GroupName: "Alpha", Title: "Again", Kind: models.KindFile, Value: "r2.pdf"})
		if !errors.Is(err, storage.ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}
	})

	t.Run("missing records", func(t *testing.T) {
		if _, err := store.GetStudent(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetStudent: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetGroup(ctx, scope, "Nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetSubmission(ctx, "no-such-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetSubmission: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetGrade(ctx, "no-such-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGrade: expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteGroupLeavesSubmissions(t *testing.T) {
	store := New()
	ctx := context.Background()
	scope := models.SubjectScope("CS101")

	if err := store.CreateGroup(ctx, &models.Group{Scope: scope, Name: "Alpha", Members: []string{"student1"}}); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	sub := &models.Submission{Scope: scope, GroupName: "Alpha", Title: "Report", Kind: models.KindFile, Value: "r.pdf"}
	if err := store.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}

	if err := store.DeleteGroup(ctx, scope, "Alpha"); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if err := store.DeleteGroup(ctx, scope, "Alpha"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}

	if _, err := store.GetSubmission(ctx, sub.ID); err != nil {
		t.Errorf("expected submission to survive group deletion, got %v", err)
	}
}
