package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/verigate/verigate-backend/pkg/errorx"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid contact info", func(t *testing.T) {
		u, err := NewUser("alice@example.com", "+15551234567")
		require.NoError(t, err)

		assert.False(t, u.ID().IsZero())
		assert.Equal(t, "alice@example.com", u.Email())
		assert.Equal(t, "+15551234567", u.Phone())
		assert.False(t, u.IsVerified())
		assert.False(t, u.CreatedAt().IsZero())

		events := u.Uncommitted()
		require.Len(t, events, 1)
		registered, ok := events[0].(*Registered)
		require.True(t, ok)
		assert.Equal(t, u.ID(), registered.UserID)
		assert.Equal(t, "alice@example.com", registered.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "+15551234567")
		require.Error(t, err)
	})

	t.Run("invalid phone", func(t *testing.T) {
		tests := []string{"", "12345", "0123456789", "+0123", "555-123-4567"}
		for _, phone := range tests {
			_, err := NewUser("alice@example.com", phone)
			require.Error(t, err, "phone %q should be rejected", phone)
		}
	})
}

func TestUser_ChangeContact(t *testing.T) {
	t.Parallel()

	t.Run("unverified user", func(t *testing.T) {
		u, err := NewUser("alice@example.com", "+15551234567")
		require.NoError(t, err)
		u.MarkCommitted()

		err = u.ChangeContact("alice+new@example.com", "+15557654321")
		require.NoError(t, err)
		assert.Equal(t, "alice+new@example.com", u.Email())
		assert.Equal(t, "+15557654321", u.Phone())

		events := u.Uncommitted()
		require.Len(t, events, 1)
		assert.IsType(t, &ContactChanged{}, events[0])
	})

	t.Run("verified user is frozen", func(t *testing.T) {
		u, err := NewUser("alice@example.com", "+15551234567")
		require.NoError(t, err)
		require.NoError(t, u.MarkVerified())

		err = u.ChangeContact("other@example.com", "+15557654321")
		require.Error(t, err)
		assert.True(t, errorx.IsAlreadyVerified(err))
		assert.Equal(t, "alice@example.com", u.Email())
	})

	t.Run("invalid new contact leaves user unchanged", func(t *testing.T) {
		u, err := NewUser("alice@example.com", "+15551234567")
		require.NoError(t, err)

		err = u.ChangeContact("broken", "+15557654321")
		require.Error(t, err)
		assert.Equal(t, "alice@example.com", u.Email())
		assert.Equal(t, "+15551234567", u.Phone())
	})
}

func TestUser_MarkVerified(t *testing.T) {
	t.Parallel()

	u, err := NewUser("alice@example.com", "+15551234567")
	require.NoError(t, err)
	u.MarkCommitted()

	require.NoError(t, u.MarkVerified())
	assert.True(t, u.IsVerified())

	events := u.Uncommitted()
	require.Len(t, events, 1)
	verified, ok := events[0].(*Verified)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", verified.Email)

	// terminal: a second attempt is a conflict, state stays verified
	err = u.MarkVerified()
	require.Error(t, err)
	assert.True(t, errorx.IsAlreadyVerified(err))
	assert.True(t, u.IsVerified())
}
