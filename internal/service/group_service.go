package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"divvy/internal/models"
	"divvy/internal/storage"
)

// GroupService implements group creation, lookup, and membership management.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, callerID, name string) (*models.GroupDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("Please add a group name")
	}

	group := &models.Group{
		Name:      name,
		MemberIDs: []string{callerID},
		CreatedBy: callerID,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, internal("Server error", err)
	}

	slog.Info("Group created", "group_id", group.ID, "created_by", callerID)

	return s.resolveGroup(ctx, group)
}

// ListGroups returns every group the caller belongs to, members and expenses
// resolved.
func (s *GroupService) ListGroups(ctx context.Context, callerID string) ([]models.GroupDetail, error) {
	groups, err := s.store.ListGroupsForUser(ctx, callerID)
	if err != nil {
		return nil, internal("Server error", err)
	}

	details := make([]models.GroupDetail, 0, len(groups))
	for _, group := range groups {
		detail, err := s.resolveGroup(ctx, group)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}

	return details, nil
}

// GetGroup returns a single group. The caller must be a member.
func (s *GroupService) GetGroup(ctx context.Context, callerID, groupID string) (*models.GroupDetail, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("Group not found")
		}
		return nil, internal("Server error", err)
	}

	if !group.HasMember(callerID) {
		return nil, unauthorized("Not authorized")
	}

	return s.resolveGroup(ctx, group)
}

// AddMember adds the user registered under email to the group. The caller
// must already be a member; adding an existing member is a conflict.
func (s *GroupService) AddMember(ctx context.Context, callerID, groupID, email string) (*models.GroupDetail, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("Group not found")
		}
		return nil, internal("Server error", err)
	}

	if !group.HasMember(callerID) {
		return nil, unauthorized("Not authorized")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, internal("Server error", err)
	}

	if group.HasMember(user.ID) {
		return nil, conflict("User already in group")
	}

	if err := s.store.AddGroupMember(ctx, group.ID, user.ID); err != nil {
		return nil, internal("Server error", err)
	}
	group.MemberIDs = append(group.MemberIDs, user.ID)

	slog.Info("Member added to group", "group_id", group.ID, "user_id", user.ID)

	return s.resolveGroup(ctx, group)
}

// resolveGroup expands a group's member and expense ID lists into full
// records via explicit store lookups.
func (s *GroupService) resolveGroup(ctx context.Context, group *models.Group) (*models.GroupDetail, error) {
	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, internal("Server error", err)
	}

	members := make([]models.UserRef, 0, len(group.MemberIDs))
	for _, id := range group.MemberIDs {
		user, ok := users[id]
		if !ok {
			return nil, internal("Server error", errors.New("group member "+id+" not found"))
		}
		members = append(members, user.Ref())
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, internal("Server error", err)
	}
	details, err := resolveExpenses(ctx, s.store, expenses)
	if err != nil {
		return nil, err
	}

	return &models.GroupDetail{
		ID:        group.ID,
		Name:      group.Name,
		Members:   members,
		Expenses:  details,
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt,
	}, nil
}
