package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/psahay/classwork/internal/models"
	"github.com/psahay/classwork/internal/storage"
)

// GroupService owns group membership and leadership within each scope.
//
// Invariants it enforces: group names are unique per scope, a group
// holds at most models.MaxGroupSize members, a student belongs to at
// most one group per scope, the leader is always a member, and a group
// emptied by its last member leaving is pruned.
type GroupService struct {
	store storage.Store
	locks *ScopeLocks
}

// NewGroupService creates a new GroupService with the given storage
// backend and scope-lock table.
func NewGroupService(store storage.Store, locks *ScopeLocks) *GroupService {
	return &GroupService{store: store, locks: locks}
}

// Create forms a new single-member group with creator as its only
// member and no leader.
func (s *GroupService) Create(ctx context.Context, scope models.Scope, name, creator string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGroupName
	}

	unlock := s.locks.Lock(scope)
	defer unlock()

	if _, err := s.findUserGroup(ctx, scope, creator); err == nil {
		return nil, ErrAlreadyInGroup
	} else if !errors.Is(err, ErrNotInGroup) {
		return nil, err
	}

	group := &models.Group{
		Scope:   scope,
		Name:    name,
		Members: []string{creator},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, ErrDuplicateGroupName
		}
		return nil, err
	}

	slog.Info("Group created", "scope", scope, "group", name, "creator", creator)
	return group, nil
}

// CreateEmpty forms a new auto-named, zero-member group. Teacher use
// only: empty groups are not pruned until they are emptied or deleted.
func (s *GroupService) CreateEmpty(ctx context.Context, scope models.Scope) (*models.Group, error) {
	unlock := s.locks.Lock(scope)
	defer unlock()

	existing, err := s.store.ListGroups(ctx, scope)
	if err != nil {
		return nil, err
	}

	// "Group N" may already be taken if earlier groups were deleted;
	// keep counting until a free name turns up.
	n := len(existing) + 1
	var group *models.Group
	for {
		group = &models.Group{
			Scope:   scope,
			Name:    fmt.Sprintf("Group %d", n),
			Members: []string{},
		}
		err := s.store.CreateGroup(ctx, group)
		if err == nil {
			break
		}
		if !errors.Is(err, storage.ErrExists) {
			return nil, err
		}
		n++
	}

	slog.Info("Group created by teacher", "scope", scope, "group", group.Name)
	return group, nil
}

// Join adds user to the named group.
func (s *GroupService) Join(ctx context.Context, scope models.Scope, name, user string) (*models.Group, error) {
	unlock := s.locks.Lock(scope)
	defer unlock()

	return s.addMember(ctx, scope, name, user)
}

// AddMember adds user to the named group on the teacher's behalf. The
// capacity and one-group-per-scope rules apply exactly as for Join.
func (s *GroupService) AddMember(ctx context.Context, scope models.Scope, name, user string) (*models.Group, error) {
	unlock := s.locks.Lock(scope)
	defer unlock()

	return s.addMember(ctx, scope, name, user)
}

func (s *GroupService) addMember(ctx context.Context, scope models.Scope, name, user string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, scope, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if group.HasMember(user) {
		return nil, ErrAlreadyMember
	}
	if _, err := s.findUserGroup(ctx, scope, user); err == nil {
		return nil, ErrAlreadyInGroup
	} else if !errors.Is(err, ErrNotInGroup) {
		return nil, err
	}
	if group.Full() {
		return nil, ErrGroupFull
	}

	group.Members = append(group.Members, user)
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("Member joined group", "scope", scope, "group", name, "user", user, "members", len(group.Members))
	return group, nil
}

// Leave removes user from their group in the scope. Leadership clears
// if the leaver was leader; the group is pruned when its last member
// leaves.
func (s *GroupService) Leave(ctx context.Context, scope models.Scope, user string) error {
	unlock := s.locks.Lock(scope)
	defer unlock()

	group, err := s.findUserGroup(ctx, scope, user)
	if err != nil {
		return err
	}

	members := group.Members[:0:0]
	for _, m := range group.Members {
		if m != user {
			members = append(members, m)
		}
	}
	group.Members = members
	if group.Leader == user {
		group.Leader = ""
	}

	if len(group.Members) == 0 {
		if err := s.store.DeleteGroup(ctx, scope, group.Name); err != nil {
			return err
		}
		slog.Info("Group dissolved", "scope", scope, "group", group.Name)
		return nil
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return err
	}
	slog.Info("Member left group", "scope", scope, "group", group.Name, "user", user)
	return nil
}

// SetLeader makes user the group's leader. Idempotent; the user must be
// a member.
func (s *GroupService) SetLeader(ctx context.Context, scope models.Scope, name, user string) error {
	unlock := s.locks.Lock(scope)
	defer unlock()

	group, err := s.store.GetGroup(ctx, scope, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	if !group.HasMember(user) {
		return ErrNotMember
	}
	if group.Leader == user {
		return nil
	}

	group.Leader = user
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return err
	}

	slog.Info("Group leader set", "scope", scope, "group", name, "leader", user)
	return nil
}

// Delete removes a group. Teacher use only. Submissions the group made
// stay in the ledger.
func (s *GroupService) Delete(ctx context.Context, scope models.Scope, name string) error {
	unlock := s.locks.Lock(scope)
	defer unlock()

	if err := s.store.DeleteGroup(ctx, scope, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	slog.Info("Group deleted", "scope", scope, "group", name)
	return nil
}

// List returns the scope's groups in creation order.
func (s *GroupService) List(ctx context.Context, scope models.Scope) ([]*models.Group, error) {
	return s.store.ListGroups(ctx, scope)
}

// MyGroup returns the at-most-one group user belongs to in the scope,
// or ErrNotInGroup.
func (s *GroupService) MyGroup(ctx context.Context, scope models.Scope, user string) (*models.Group, error) {
	return s.findUserGroup(ctx, scope, user)
}

func (s *GroupService) findUserGroup(ctx context.Context, scope models.Scope, user string) (*models.Group, error) {
	groups, err := s.store.ListGroups(ctx, scope)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if g.HasMember(user) {
			return g, nil
		}
	}
	return nil, ErrNotInGroup
}
