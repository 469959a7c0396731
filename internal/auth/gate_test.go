package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/psahay/classwork/internal/service"
	"github.com/psahay/classwork/internal/storage/memory"
)

func newGateFixture(t *testing.T) (*Gate, *service.RosterService) {
	t.Helper()
	roster := service.NewRosterService(memory.New())
	gate, err := NewGate(roster, "teacher", "teacher123")
	if err != nil {
		t.Fatalf("NewGate failed: %v", err)
	}
	return gate, roster
}

func TestTeacherLogin(t *testing.T) {
	gate, _ := newGateFixture(t)
	ctx := context.Background()

	if err := gate.Login(ctx, RoleTeacher, "teacher", "teacher123"); err != nil {
		t.Errorf("expected teacher login to succeed, got %v", err)
	}
	if err := gate.Login(ctx, RoleTeacher, "teacher", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad secret, got %v", err)
	}
	if err := gate.Login(ctx, RoleTeacher, "someone", "teacher123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad username, got %v", err)
	}
}

func TestStudentLogin(t *testing.T) {
	gate, roster := newGateFixture(t)
	ctx := context.Background()

	if _, err := roster.AddStudent(ctx, "student1", "pass123", []string{"CS101"}); err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		if err := gate.Login(ctx, RoleStudent, "student1", "pass123"); err != nil {
			t.Errorf("expected login to succeed, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		err := gate.Login(ctx, RoleStudent, "student1", "nope")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		err := gate.Login(ctx, RoleStudent, "ghost", "pass123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("revocation is effective immediately", func(t *testing.T) {
		if err := roster.SetAccess(ctx, "student1", false); err != nil {
			t.Fatalf("SetAccess failed: %v", err)
		}
		err := gate.Login(ctx, RoleStudent, "student1", "pass123")
		if !errors.Is(err, service.ErrAccessDenied) {
			t.Errorf("expected ErrAccessDenied, got %v", err)
		}

		if err := roster.SetAccess(ctx, "student1", true); err != nil {
			t.Fatalf("SetAccess failed: %v", err)
		}
		if err := gate.Login(ctx, RoleStudent, "student1", "pass123"); err != nil {
			t.Errorf("expected login to succeed after restore, got %v", err)
		}
	})
}

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate("student1", RoleStudent)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Username != "student1" {
		t.Errorf("expected username 'student1', got %q", claims.Username)
	}
	if claims.Role != RoleStudent {
		t.Errorf("expected role student, got %q", claims.Role)
	}

	t.Run("tampered token rejected", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
