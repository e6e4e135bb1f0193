package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	svc := f.userService()

	user, err := svc.GetUser(ctx(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.GetUser(ctx(), "ghost")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSearchUsers(t *testing.T) {
	f := newFixture()
	f.addUser("alice", "Alice")
	f.addUser("alina", "Alina")
	f.addUser("bob", "Bob")
	svc := f.userService()

	users, err := svc.SearchUsers(ctx(), "bob", "ali", 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// Name matching is substring, not prefix.
	users, err = svc.SearchUsers(ctx(), "bob", "lina", 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alina", users[0].ID)

	// The searcher never appears in their own results.
	users, err = svc.SearchUsers(ctx(), "alice", "ali", 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alina", users[0].ID)

	_, err = svc.SearchUsers(ctx(), "bob", "", 10)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}
