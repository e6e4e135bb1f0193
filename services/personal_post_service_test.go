package services

import (
	"testing"

	"gathr_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePersonalPostTargets(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	f.addUser("stranger", "Stranger")
	f.addFriendship("alice", "bob", models.FriendshipAccepted)
	svc := f.personalPostService()

	// Empty target defaults to the author's own feed.
	own, err := svc.CreatePersonalPost(ctx(), "alice", "", "note to self")
	require.NoError(t, err)
	assert.Equal(t, "alice", own.TargetUserID)

	wall, err := svc.CreatePersonalPost(ctx(), "alice", "bob", "hi bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", wall.TargetUserID)

	_, err = svc.CreatePersonalPost(ctx(), "alice", "stranger", "hi stranger")
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = svc.CreatePersonalPost(ctx(), "alice", "ghost", "hello")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.CreatePersonalPost(ctx(), "alice", "bob", "   ")
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestCreatePersonalPostPendingFriendshipForbidden(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("bob", "Bob")
	f.addFriendship("alice", "bob", models.FriendshipPending)

	_, err := f.personalPostService().CreatePersonalPost(ctx(), "alice", "bob", "too soon")
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestListProfileFeedVisibility(t *testing.T) {
	f := newFixture()
	f.addUser("owner", "Owner")
	f.addUser("friend", "Friend")
	f.addUser("stranger", "Stranger")
	f.addFriendship("owner", "friend", models.FriendshipAccepted)

	f.addPersonalPost("own", "owner", "owner", "own post")
	f.addPersonalPost("fromFriend", "friend", "owner", "friend's post")
	f.addPersonalPost("fromStranger", "stranger", "owner", "stranger's post")
	svc := f.personalPostService()

	// The owner and accepted friends see the whole feed.
	posts, pagination, err := svc.ListProfileFeed(ctx(), "owner", "owner", 1, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, 3, pagination.Total)

	posts, _, err = svc.ListProfileFeed(ctx(), "friend", "owner", 1, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	// Newest first with author resolved.
	assert.Equal(t, "fromStranger", posts[0].ID)
	assert.Equal(t, "Stranger", posts[0].Author.Name)

	// A non-friend sees only what they authored on this feed.
	posts, pagination, err = svc.ListProfileFeed(ctx(), "stranger", "owner", 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "fromStranger", posts[0].ID)
	assert.Equal(t, 1, pagination.Total)

	_, _, err = svc.ListProfileFeed(ctx(), "owner", "ghost", 1, 10)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestLikePersonalPost(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addPersonalPost("p1", "alice", "alice", "post")
	svc := f.personalPostService()

	count, err := svc.LikePersonalPost(ctx(), "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.LikePersonalPost(ctx(), "alice", "p1")
	assert.Equal(t, KindConflict, KindOf(err))

	count, err = svc.UnlikePersonalPost(ctx(), "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = svc.UnlikePersonalPost(ctx(), "alice", "p1")
	assert.Equal(t, KindInvalidInput, KindOf(err))

	post, err := f.personalPosts.Get(ctx(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, post.LikeCount)
}
