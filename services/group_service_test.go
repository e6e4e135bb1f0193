package services

import (
	"testing"

	"gathr_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupSeedsOwnerMembership(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	svc := f.groupService()

	group, err := svc.CreateGroup(ctx(), "alice", "Hikers", "We hike")
	require.NoError(t, err)
	assert.Equal(t, 1, group.MemberCount)

	membership, err := f.memberships.Find(ctx(), group.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, membership.Role)
	assert.True(t, membership.IsActive)

	_, err = svc.CreateGroup(ctx(), "alice", "", "")
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestJoinGroupIncrementsCounter(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	svc := f.groupService()

	group, err := svc.CreateGroup(ctx(), "alice", "Hikers", "")
	require.NoError(t, err)
	require.NoError(t, svc.JoinGroup(ctx(), "bob", group.ID))

	got, err := f.groups.Get(ctx(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount)

	err = svc.JoinGroup(ctx(), "bob", group.ID)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "You are already a member of this group", MessageOf(err))

	err = svc.JoinGroup(ctx(), "bob", "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestLeaveAndRejoinReactivatesMembership(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	svc := f.groupService()

	group, err := svc.CreateGroup(ctx(), "alice", "Hikers", "")
	require.NoError(t, err)
	require.NoError(t, svc.JoinGroup(ctx(), "bob", group.ID))
	require.NoError(t, svc.LeaveGroup(ctx(), "bob", group.ID))

	got, err := f.groups.Get(ctx(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)

	// Rejoining reuses the deactivated document instead of inserting a
	// second one for the pair.
	require.NoError(t, svc.JoinGroup(ctx(), "bob", group.ID))
	count := 0
	for _, m := range f.memberships.memberships {
		if m.GroupID == group.ID && m.UserID == "bob" {
			count++
			assert.True(t, m.IsActive)
		}
	}
	assert.Equal(t, 1, count)

	got, err = f.groups.Get(ctx(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount)
}

func TestOwnerCannotLeaveGroup(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	svc := f.groupService()

	group, err := svc.CreateGroup(ctx(), "alice", "Hikers", "")
	require.NoError(t, err)

	err = svc.LeaveGroup(ctx(), "alice", group.ID)
	assert.Equal(t, KindForbidden, KindOf(err))

	// The rejection happens before any counter mutation.
	got, err := f.groups.Get(ctx(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)

	membership, err := f.memberships.Find(ctx(), group.ID, "alice")
	require.NoError(t, err)
	assert.True(t, membership.IsActive)
}

func TestLeaveGroupWhenNotMember(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	svc := f.groupService()

	group, err := svc.CreateGroup(ctx(), "alice", "Hikers", "")
	require.NoError(t, err)

	err = svc.LeaveGroup(ctx(), "bob", group.ID)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	// An already-deactivated membership counts as not a member.
	require.NoError(t, svc.JoinGroup(ctx(), "bob", group.ID))
	require.NoError(t, svc.LeaveGroup(ctx(), "bob", group.ID))
	err = svc.LeaveGroup(ctx(), "bob", group.ID)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	got, err := f.groups.Get(ctx(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)
}

func TestRecountGroupRepairsDrift(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	svc := f.groupService()

	group, err := svc.CreateGroup(ctx(), "alice", "Hikers", "")
	require.NoError(t, err)
	require.NoError(t, svc.JoinGroup(ctx(), "bob", group.ID))

	drifted := f.groups.groups[group.ID]
	drifted.MemberCount = 99
	f.groups.groups[group.ID] = drifted

	count, err := svc.RecountGroup(ctx(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := f.groups.Get(ctx(), group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount)
}

func TestUpdateGroupRequiresOwnerOrAdmin(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	f.addUser("carol", "Carol")
	f.addGroup("g1", "Hikers", "alice")
	f.addMembership("g1", "alice", models.RoleOwner, true)
	f.addMembership("g1", "bob", models.RoleAdmin, true)
	f.addMembership("g1", "carol", models.RoleMember, true)
	svc := f.groupService()

	group, err := svc.UpdateGroup(ctx(), "bob", "g1", "Trail Club", "")
	require.NoError(t, err)
	assert.Equal(t, "Trail Club", group.Name)

	// Empty fields leave the document unchanged.
	group, err = svc.UpdateGroup(ctx(), "alice", "g1", "", "All welcome")
	require.NoError(t, err)
	assert.Equal(t, "Trail Club", group.Name)
	assert.Equal(t, "All welcome", group.Description)

	_, err = svc.UpdateGroup(ctx(), "carol", "g1", "Takeover", "")
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = svc.UpdateGroup(ctx(), "alice", "missing", "Name", "")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteGroupCascadesMemberships(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	f.addGroup("g1", "Hikers", "alice")
	f.addMembership("g1", "alice", models.RoleOwner, true)
	f.addMembership("g1", "bob", models.RoleMember, true)
	f.addMembership("g1", "carol", models.RoleMember, false)
	f.addGroup("g2", "Runners", "bob")
	f.addMembership("g2", "bob", models.RoleOwner, true)
	svc := f.groupService()

	err := svc.DeleteGroup(ctx(), "bob", "g1")
	assert.Equal(t, KindForbidden, KindOf(err))

	require.NoError(t, svc.DeleteGroup(ctx(), "alice", "g1"))
	_, err = f.groups.Get(ctx(), "g1")
	assert.ErrorIs(t, err, ErrItemNotFound)

	// Every membership of the group is removed, inactive ones included;
	// other groups are untouched.
	_, err = f.memberships.Find(ctx(), "g1", "alice")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = f.memberships.Find(ctx(), "g1", "carol")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = f.memberships.Find(ctx(), "g2", "bob")
	require.NoError(t, err)

	err = svc.DeleteGroup(ctx(), "alice", "g1")
	assert.Equal(t, KindNotFound, KindOf(err))
}
