package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gathr_server/models"

	"github.com/google/uuid"
)

// GroupService owns groups, memberships and the denormalized memberCount.
// The counter moves by signed delta in the same logical operation as the
// membership write and can be rebuilt from backing records via
// RecountGroup.
type GroupService struct {
	Groups      GroupStore
	Memberships MembershipStore
	Users       UserStore
	Log         *slog.Logger
}

// CreateGroup stores a group and an owner membership for the creator.
func (gs *GroupService) CreateGroup(ctx context.Context, creatorID, name, description string) (*models.Group, error) {
	if name == "" {
		return nil, InvalidInputError("Group name is required")
	}
	now := time.Now().UTC()
	group := &models.Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
		MemberCount: 1,
		CreatedAt:   now,
	}
	if err := gs.Groups.Put(ctx, group); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	membership := &models.GroupMembership{
		ID:       uuid.NewString(),
		GroupID:  group.ID,
		UserID:   creatorID,
		Role:     models.RoleOwner,
		IsActive: true,
		JoinedAt: now,
	}
	if err := gs.Memberships.Put(ctx, membership); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if gs.Log != nil {
		gs.Log.Info("group created", "group", group.ID, "creator", creatorID)
	}
	return group, nil
}

// GetGroup returns one group.
func (gs *GroupService) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := gs.Groups.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Group not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	return group, nil
}

// ListGroups returns up to limit groups, newest first.
func (gs *GroupService) ListGroups(ctx context.Context, limit int) ([]models.Group, error) {
	groups, err := gs.Groups.List(ctx, limit)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	return groups, nil
}

// UpdateGroup applies the provided fields to the group. Empty fields are
// left unchanged. Only an active owner or admin may update.
func (gs *GroupService) UpdateGroup(ctx context.Context, userID, groupID, name, description string) (*models.Group, error) {
	group, err := gs.Groups.Get(ctx, groupID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Group not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	membership, err := gs.Memberships.Find(ctx, groupID, userID)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return nil, InternalError(err, "Internal server error")
	}
	if err != nil || !membership.IsActive ||
		(membership.Role != models.RoleOwner && membership.Role != models.RoleAdmin) {
		return nil, ForbiddenError("You do not have permission to update this group")
	}
	if name != "" {
		group.Name = name
	}
	if description != "" {
		group.Description = description
	}
	if err := gs.Groups.Put(ctx, group); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if gs.Log != nil {
		gs.Log.Info("group updated", "group", groupID, "user", userID)
	}
	return group, nil
}

// DeleteGroup removes the group and every membership document, active or
// not. Only the owner may delete. Memberships go first so a partial failure
// cannot leave members pointing at a missing group.
func (gs *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	if _, err := gs.Groups.Get(ctx, groupID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Group not found")
		}
		return InternalError(err, "Internal server error")
	}
	membership, err := gs.Memberships.Find(ctx, groupID, userID)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return InternalError(err, "Internal server error")
	}
	if err != nil || !membership.IsActive || membership.Role != models.RoleOwner {
		return ForbiddenError("Only the group owner can delete the group")
	}
	if err := gs.Memberships.DeleteByGroup(ctx, groupID); err != nil {
		return InternalError(err, "Internal server error")
	}
	if err := gs.Groups.Delete(ctx, groupID); err != nil {
		return InternalError(err, "Internal server error")
	}
	if gs.Log != nil {
		gs.Log.Info("group deleted", "group", groupID, "owner", userID)
	}
	return nil
}

// JoinGroup adds userID to the group. A deactivated membership is
// reactivated instead of inserting a second document for the same
// (group, user) pair. The counter delta is applied after the membership
// write.
func (gs *GroupService) JoinGroup(ctx context.Context, userID, groupID string) error {
	if _, err := gs.Groups.Get(ctx, groupID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Group not found")
		}
		return InternalError(err, "Internal server error")
	}

	now := time.Now().UTC()
	membership, err := gs.Memberships.Find(ctx, groupID, userID)
	switch {
	case err == nil:
		if membership.IsActive {
			return ConflictError("You are already a member of this group")
		}
		membership.IsActive = true
		membership.JoinedAt = now
	case errors.Is(err, ErrItemNotFound):
		membership = &models.GroupMembership{
			ID:       uuid.NewString(),
			GroupID:  groupID,
			UserID:   userID,
			Role:     models.RoleMember,
			IsActive: true,
			JoinedAt: now,
		}
	default:
		return InternalError(err, "Internal server error")
	}
	if err := gs.Memberships.Put(ctx, membership); err != nil {
		return InternalError(err, "Internal server error")
	}
	if err := gs.Groups.AddMemberCount(ctx, groupID, 1); err != nil {
		return InternalError(err, "Internal server error")
	}
	if gs.Log != nil {
		gs.Log.Info("group joined", "group", groupID, "user", userID)
	}
	return nil
}

// LeaveGroup deactivates the membership. The owner can never leave; the
// check runs before any counter mutation.
func (gs *GroupService) LeaveGroup(ctx context.Context, userID, groupID string) error {
	if _, err := gs.Groups.Get(ctx, groupID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Group not found")
		}
		return InternalError(err, "Internal server error")
	}
	membership, err := gs.Memberships.Find(ctx, groupID, userID)
	if err != nil || !membership.IsActive {
		if err != nil && !errors.Is(err, ErrItemNotFound) {
			return InternalError(err, "Internal server error")
		}
		return InvalidInputError("You are not a member of this group")
	}
	if membership.Role == models.RoleOwner {
		return ForbiddenError("Group owner cannot leave the group. Transfer ownership or delete the group.")
	}
	membership.IsActive = false
	if err := gs.Memberships.Put(ctx, membership); err != nil {
		return InternalError(err, "Internal server error")
	}
	if err := gs.Groups.AddMemberCount(ctx, groupID, -1); err != nil {
		return InternalError(err, "Internal server error")
	}
	if gs.Log != nil {
		gs.Log.Info("group left", "group", groupID, "user", userID)
	}
	return nil
}

// RecountGroup rebuilds memberCount from the active membership records and
// returns the recomputed value.
func (gs *GroupService) RecountGroup(ctx context.Context, groupID string) (int, error) {
	if _, err := gs.Groups.Get(ctx, groupID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return 0, NotFoundError("Group not found")
		}
		return 0, InternalError(err, "Internal server error")
	}
	count, err := gs.Memberships.CountActiveByGroup(ctx, groupID)
	if err != nil {
		return 0, InternalError(err, "Internal server error")
	}
	if err := gs.Groups.SetMemberCount(ctx, groupID, count); err != nil {
		return 0, InternalError(err, "Internal server error")
	}
	if gs.Log != nil {
		gs.Log.Info("group member count recounted", "group", groupID, "count", count)
	}
	return count, nil
}
