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

// CreateGroup persists a new group, generating its ID and timestamp.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, subject, project, name, leader, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		group.ID, group.Scope.Subject, group.Scope.Project, group.Name, group.Leader, group.CreatedAt,
	)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("group %q in %s: %w", group.Name, group.Scope, storage.ErrExists)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, member := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, username, position) VALUES (?, ?, ?)",
			group.ID, member, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by scope and name.
func (s *SQLiteStore) GetGroup(ctx context.Context, scope models.Scope, name string) (*models.Group, error) {
	group := &models.Group{Scope: scope}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, leader, created_at FROM groups WHERE subject = ? AND project = ? AND name = ?",
		scope.Subject, scope.Project, name,
	).Scan(&group.ID, &group.Name, &group.Leader, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %q in %s: %w", name, scope, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.groupMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// UpdateGroup replaces an existing group's members and leader.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE groups SET leader = ? WHERE subject = ? AND project = ? AND name = ?",
		group.Leader, group.Scope.Subject, group.Scope.Project, group.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group %q in %s: %w", group.Name, group.Scope, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", group.ID); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}
	for i, member := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, username, position) VALUES (?, ?, ?)",
			group.ID, member, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGroup removes a group and its membership rows.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, scope models.Scope, name string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM groups WHERE subject = ? AND project = ? AND name = ?",
		scope.Subject, scope.Project, name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group %q in %s: %w", name, scope, storage.ErrNotFound)
	}
	return nil
}

// ListGroups returns a scope's groups in creation order.
func (s *SQLiteStore) ListGroups(ctx context.Context, scope models.Scope) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, leader, created_at FROM groups WHERE subject = ? AND project = ? ORDER BY rowid",
		scope.Subject, scope.Project,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{Scope: scope}
		if err := rows.Scan(&group.ID, &group.Name, &group.Leader, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		members, err := s.groupMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}
	return groups, nil
}

func (s *SQLiteStore) groupMembers(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}
