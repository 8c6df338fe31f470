package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSelectsFirstUserOfRole(t *testing.T) {
	sess := NewSession(newManager(t))

	require.True(t, sess.Login(RoleStudent))
	require.NotNil(t, sess.User())
	assert.Equal(t, "John Smith", sess.User().Name)
	assert.Equal(t, ScreenDashboard, sess.Screen())

	require.True(t, sess.Login(RoleStaff))
	assert.Equal(t, "Sarah Johnson", sess.User().Name)
}

func TestLoginMissLeavesSessionUntouched(t *testing.T) {
	// An unseeded store has no users at all, so any role misses.
	db, err := NewDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sess := NewSession(&LibraryManager{db: db})
	sess.Navigate(ScreenSearch)

	assert.False(t, sess.Login(RoleStudent))
	assert.Nil(t, sess.User())
	assert.Equal(t, ScreenSearch, sess.Screen())
}

func TestLogoutResetsSession(t *testing.T) {
	sess := NewSession(newManager(t))
	require.True(t, sess.Login(RoleStudent))
	sess.Navigate(ScreenBookDetail, "3")

	sess.Logout()

	assert.False(t, sess.LoggedIn())
	assert.Equal(t, ScreenDashboard, sess.Screen())
	assert.Empty(t, sess.SelectedBook())
}

func TestNavigateRecordsSelectedBook(t *testing.T) {
	sess := NewSession(newManager(t))
	require.True(t, sess.Login(RoleStudent))

	sess.Navigate(ScreenBookDetail, "2")
	assert.Equal(t, ScreenBookDetail, sess.Screen())
	assert.Equal(t, "2", sess.SelectedBook())

	// Navigating without a book id keeps the previous selection.
	sess.Navigate(ScreenSearch)
	assert.Equal(t, "2", sess.SelectedBook())
}

func TestAdminRenderGuard(t *testing.T) {
	sess := NewSession(newManager(t))

	assert.False(t, sess.CanViewAdmin(), "logged out")

	require.True(t, sess.Login(RoleStudent))
	assert.False(t, sess.CanViewAdmin(), "student")

	// Navigation itself is not blocked; the guard only gates rendering.
	sess.Navigate(ScreenAdmin)
	assert.Equal(t, ScreenAdmin, sess.Screen())

	require.True(t, sess.Login(RoleStaff))
	assert.True(t, sess.CanViewAdmin(), "staff")
}
