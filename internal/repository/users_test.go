package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	r := newTestRepos(t)

	user := r.users.CreateUser("Jody", "hunter2", false, true, "Jody", "Smith")
	require.NotNil(t, user)

	assert.NotEqual(t, "hunter2", user.Password)
	assert.True(t, CheckPassword("hunter2", user.Password))
	assert.False(t, CheckPassword("wrong", user.Password))
}

func TestGetUserIsCaseInsensitive(t *testing.T) {
	r := newTestRepos(t)

	require.NotNil(t, r.users.CreateUser("Jody", "hunter2", true, true, "Jody", "Smith"))

	// The document is keyed by the lowercased username, so any casing
	// resolves to the same account.
	user := r.users.GetUser("JODY")
	require.NotNil(t, user)
	assert.Equal(t, "Jody", user.FirstName)
	assert.True(t, user.Admin)
	assert.True(t, user.Active)

	assert.Nil(t, r.users.GetUser("nobody"))
}

func TestUpdateUserLeavesPasswordAlone(t *testing.T) {
	r := newTestRepos(t)

	user := r.users.CreateUser("jody", "hunter2", false, true, "Jody", "Smith")
	require.NotNil(t, user)
	hash := user.Password

	user.FirstName = "Jo"
	user.Active = false
	require.True(t, r.users.UpdateUser(user))

	got := r.users.GetUser("jody")
	require.NotNil(t, got)
	assert.Equal(t, "Jo", got.FirstName)
	assert.False(t, got.Active)
	assert.Equal(t, hash, got.Password)
}

func TestUpdatePassword(t *testing.T) {
	r := newTestRepos(t)

	user := r.users.CreateUser("jody", "hunter2", false, true, "Jody", "Smith")
	require.NotNil(t, user)

	user.Password = "correct horse"
	require.True(t, r.users.UpdatePassword(user))

	got := r.users.GetUser("jody")
	require.NotNil(t, got)
	assert.True(t, CheckPassword("correct horse", got.Password))
	assert.False(t, CheckPassword("hunter2", got.Password))
}

func TestUpdateUserNilAndMissing(t *testing.T) {
	r := newTestRepos(t)

	assert.False(t, r.users.UpdateUser(nil))
	assert.False(t, r.users.UpdatePassword(nil))
}
