package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		user, err := NewUser("Wanjiku.Farm", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, "wanjiku.farm", user.Username, "username is normalized to lowercase")
		assert.Equal(t, UserRoleFarmer, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
		require.Len(t, user.GetDomainEvents(), 1)
		assert.Equal(t, "UserRegistered", user.GetDomainEvents()[0].EventType())
	})

	t.Run("short username", func(t *testing.T) {
		_, err := NewUser("ab", "s3cret-pass")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("invalid username characters", func(t *testing.T) {
		_, err := NewUser("bad name!", "s3cret-pass")

		require.Error(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := NewUser("goodname", "short")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("wanjiku", "original-pass")
	require.NoError(t, err)

	t.Run("wrong old password", func(t *testing.T) {
		err := user.ChangePassword("not-it", "new-password")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})

	t.Run("successful change", func(t *testing.T) {
		err := user.ChangePassword("original-pass", "new-password")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("new-password"))
		assert.False(t, user.VerifyPassword("original-pass"))
	})
}

func TestUser_LoginLockout(t *testing.T) {
	user, err := NewUser("wanjiku", "s3cret-pass")
	require.NoError(t, err)

	locked := false
	for i := 0; i < 5; i++ {
		locked = user.RecordLoginFailure(5, 30*time.Minute)
	}

	assert.True(t, locked)
	assert.True(t, user.IsLocked())
	assert.False(t, user.CanLogin())

	require.NoError(t, user.Unlock())
	assert.True(t, user.CanLogin())
	assert.Equal(t, 0, user.FailedAttempts)

	user.RecordLoginSuccess("10.0.0.7")
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "10.0.0.7", user.LastLoginIP)
}

func TestUser_Profile(t *testing.T) {
	user, err := NewUser("wanjiku", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, user.SetEmail("Wanjiku@Example.com"))
	assert.Equal(t, "wanjiku@example.com", user.Email)

	require.Error(t, user.SetEmail("not-an-email"))

	require.NoError(t, user.SetPreferredCurrency("kes"))
	assert.Equal(t, "KES", user.PreferredCurrency)
	require.Error(t, user.SetPreferredCurrency("KSHS"))

	require.NoError(t, user.SetDisplayName("Wanjiku wa Maize"))
	assert.Equal(t, "Wanjiku wa Maize", user.GetDisplayNameOrUsername())

	assert.False(t, user.CanEditArticles())
	require.NoError(t, user.SetRole(UserRoleEditor))
	assert.True(t, user.CanEditArticles())
}
