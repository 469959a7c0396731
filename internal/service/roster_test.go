package service

import (
	"context"
	"errors"
	"testing"

	"github.com/psahay/classwork/internal/storage/memory"
)

func TestRoster(t *testing.T) {
	svc := NewRosterService(memory.New())
	ctx := context.Background()

	student, err := svc.AddStudent(ctx, "student1", "pass123", []string{"CS101", "MATH201"})
	if err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}
	if !student.Access {
		t.Error("expected access granted by default")
	}
	if student.SecretHash == "pass123" {
		t.Error("expected secret to be hashed, got plain text")
	}

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := svc.AddStudent(ctx, "student1", "other", nil)
		if !errors.Is(err, ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername, got %v", err)
		}
	})

	t.Run("enrollment lookup", func(t *testing.T) {
		enrolled, err := svc.IsEnrolled(ctx, "student1", "CS101")
		if err != nil {
			t.Fatalf("IsEnrolled failed: %v", err)
		}
		if !enrolled {
			t.Error("expected student1 enrolled in CS101")
		}

		enrolled, err = svc.IsEnrolled(ctx, "student1", "PHYS301")
		if err != nil {
			t.Fatalf("IsEnrolled failed: %v", err)
		}
		if enrolled {
			t.Error("expected student1 not enrolled in PHYS301")
		}

		enrolled, err = svc.IsEnrolled(ctx, "ghost", "CS101")
		if err != nil {
			t.Fatalf("IsEnrolled failed: %v", err)
		}
		if enrolled {
			t.Error("expected unknown student not enrolled")
		}
	})

	t.Run("access toggle", func(t *testing.T) {
		if err := svc.SetAccess(ctx, "student1", false); err != nil {
			t.Fatalf("SetAccess failed: %v", err)
		}
		got, err := svc.Get(ctx, "student1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Access {
			t.Error("expected access revoked")
		}
	})

	t.Run("access toggle on unknown student rejected", func(t *testing.T) {
		err := svc.SetAccess(ctx, "ghost", false)
		if !errors.Is(err, ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})

	t.Run("list preserves creation order", func(t *testing.T) {
		if _, err := svc.AddStudent(ctx, "student2", "pass456", nil); err != nil {
			t.Fatalf("AddStudent failed: %v", err)
		}
		students, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(students) != 2 {
			t.Fatalf("expected 2 students, got %d", len(students))
		}
		if students[0].Username != "student1" || students[1].Username != "student2" {
			t.Errorf("unexpected order: %s, %s", students[0].Username, students[1].Username)
		}
	})
}
