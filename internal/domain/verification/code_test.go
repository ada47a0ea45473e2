package verification

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
)

func TestNewAuthCode(t *testing.T) {
	t.Parallel()

	userID := user.NewID()
	c, err := NewAuthCode(userID)
	require.NoError(t, err)

	assert.Equal(t, userID, c.UserID())
	assert.False(t, c.CreatedAt().IsZero())

	require.Len(t, c.Code(), CodeLength)
	n, err := strconv.Atoi(c.Code())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)

	events := c.Uncommitted()
	require.Len(t, events, 1)
	issued, ok := events[0].(*CodeIssued)
	require.True(t, ok)
	assert.Equal(t, userID, issued.UserID)
}

func TestAuthCode_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Rehydrate(RehydrateArgs{
		UserID:    user.NewID(),
		Code:      "482913",
		CreatedAt: issuedAt,
	})

	tests := []struct {
		name    string
		elapsed time.Duration
		expired bool
	}{
		{"fresh", 0, false},
		{"one second before the window", 299 * time.Second, false},
		{"exactly at the window", 300 * time.Second, false},
		{"one second past the window", 301 * time.Second, true},
		{"long past", time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, c.Expired(issuedAt.Add(tt.elapsed)))
		})
	}
}

func TestAuthCode_Matches(t *testing.T) {
	t.Parallel()

	c := Rehydrate(RehydrateArgs{
		UserID:    user.NewID(),
		Code:      "482913",
		CreatedAt: time.Now().UTC(),
	})

	assert.True(t, c.Matches("482913"))
	assert.False(t, c.Matches("482914"))
	assert.False(t, c.Matches(""))
	// comparison is verbatim, surrounding whitespace is a mismatch
	assert.False(t, c.Matches(" 482913"))
}

func TestAuthCode_ThrottleRemaining(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Rehydrate(RehydrateArgs{
		UserID:    user.NewID(),
		Code:      "482913",
		CreatedAt: issuedAt,
	})

	assert.Equal(t, ResendCooldown, c.ThrottleRemaining(issuedAt))
	assert.Equal(t, 30*time.Second, c.ThrottleRemaining(issuedAt.Add(30*time.Second)))
	assert.Equal(t, time.Duration(0), c.ThrottleRemaining(issuedAt.Add(60*time.Second)))
	assert.Equal(t, time.Duration(0), c.ThrottleRemaining(issuedAt.Add(time.Hour)))
}
