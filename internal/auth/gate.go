// Package auth implements the portal's login gate: a single teacher
// credential pair from configuration plus bcrypt-checked student
// secrets from the roster. Authentication here is a binary access
// decision; everything past the gate trusts the (username, role) pair.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/psahay/classwork/internal/service"
)

// Role distinguishes the two kinds of actor the portal knows about.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Gate authenticates logins against the roster (students) or the
// configured teacher credential pair.
type Gate struct {
	roster      *service.RosterService
	teacherUser string
	teacherHash []byte
}

// NewGate creates a login gate. The teacher secret is hashed once at
// construction so it never sits around in plain text.
func NewGate(roster *service.RosterService, teacherUser, teacherSecret string) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(teacherSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash teacher secret: %w", err)
	}
	return &Gate{
		roster:      roster,
		teacherUser: teacherUser,
		teacherHash: hash,
	}, nil
}

// Login verifies the credentials for the requested role. Students with
// a revoked access flag are rejected with service.ErrAccessDenied even
// when the secret is correct; the flag is read live so a revocation is
// effective immediately.
func (g *Gate) Login(ctx context.Context, role Role, username, secret string) error {
	switch role {
	case RoleTeacher:
		if username != g.teacherUser {
			return ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword(g.teacherHash, []byte(secret)); err != nil {
			return ErrInvalidCredentials
		}
		return nil

	case RoleStudent:
		student, err := g.roster.Get(ctx, username)
		if err != nil {
			return ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(student.SecretHash), []byte(secret)); err != nil {
			return ErrInvalidCredentials
		}
		if !student.Access {
			return service.ErrAccessDenied
		}
		return nil

	default:
		return ErrInvalidCredentials
	}
}
