package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/tests/integration/builders"
	"gitlab.com/verigate/verigate-backend/tests/mocks"
)

type LoginSuite struct {
	Handler      *LoginHandler
	MockUsers    *mocks.UserRepo
	MockCodes    *mocks.CodeRepo
	MockNotifier *mocks.Notifier
}

func NewLoginSuite() *LoginSuite {
	mockUsers := mocks.NewUserRepo()
	mockCodes := mocks.NewCodeRepo()
	mockNotifier := mocks.NewNotifier()
	handler := NewLoginHandler(LoginHandlerArgs{
		Users:    mockUsers,
		Codes:    mockCodes,
		Notifier: mockNotifier,
	})

	return &LoginSuite{
		Handler:      handler,
		MockUsers:    mockUsers,
		MockCodes:    mockCodes,
		MockNotifier: mockNotifier,
	}
}

func TestLoginHandler_VerifiedUser_Succeeds(t *testing.T) {
	t.Parallel()

	s := NewLoginSuite()
	u := builders.NewUserBuilder().
		WithEmail("member@example.com").
		Verified().
		Build()
	s.MockUsers.SeedUser(t, u)

	result, err := s.Handler.Handle(t.Context(), Login{Email: "member@example.com"})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, u.ID(), result.User.ID())
	assert.False(t, result.Resent)

	assert.Equal(t, 0, s.MockCodes.CodeCount(u.ID()))
	s.MockNotifier.AssertNothingSent(t)
}

func TestLoginHandler_UnverifiedUser_ResendsCode(t *testing.T) {
	t.Parallel()

	s := NewLoginSuite()
	u := builders.NewUserBuilder().WithEmail("pending@example.com").Build()
	s.MockUsers.SeedUser(t, u)

	result, err := s.Handler.Handle(t.Context(), Login{Email: "pending@example.com"})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Resent)
	assert.False(t, result.User.IsVerified())

	assert.Equal(t, 1, s.MockCodes.CodeCount(u.ID()))
	latest := s.MockCodes.LatestCode(t, u.ID())

	sent := s.MockNotifier.RequireLastSent(t)
	assert.Equal(t, "pending@example.com", sent.Recipient)
	assert.Equal(t, "email", sent.Channel)
	assert.Equal(t, latest.Code(), sent.Code)
}

func TestLoginHandler_UnknownEmail_ShouldReturnNotFound(t *testing.T) {
	t.Parallel()

	s := NewLoginSuite()

	result, err := s.Handler.Handle(t.Context(), Login{Email: "ghost@example.com"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsNotFound(err))

	s.MockNotifier.AssertNothingSent(t)
}

func TestLoginHandler_RecentCode_ShouldThrottle(t *testing.T) {
	t.Parallel()

	s := NewLoginSuite()
	u := builders.NewUserBuilder().WithEmail("eager@example.com").Build()
	s.MockUsers.SeedUser(t, u)
	s.MockCodes.SeedCode(t, builders.NewAuthCodeBuilder().
		WithUserID(u.ID()).
		Build())

	result, err := s.Handler.Handle(t.Context(), Login{Email: "eager@example.com"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsCode(err, errorx.CodeResendThrottled))

	// no second code, nothing delivered
	assert.Equal(t, 1, s.MockCodes.CodeCount(u.ID()))
	s.MockNotifier.AssertNothingSent(t)
}

func TestLoginHandler_CooldownElapsed_IssuesNewCode(t *testing.T) {
	t.Parallel()

	s := NewLoginSuite()
	u := builders.NewUserBuilder().WithEmail("patient@example.com").Build()
	s.MockUsers.SeedUser(t, u)
	old := builders.NewAuthCodeBuilder().
		WithUserID(u.ID()).
		WithCode("482913").
		ResendAvailable().
		Build()
	s.MockCodes.SeedCode(t, old)

	result, err := s.Handler.Handle(t.Context(), Login{Email: "patient@example.com"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Resent)

	assert.Equal(t, 2, s.MockCodes.CodeCount(u.ID()))
	latest := s.MockCodes.LatestCode(t, u.ID())
	assert.NotEqual(t, old.CreatedAt(), latest.CreatedAt())

	mocks.RequireEventExists(t, s.MockCodes.EventRepo, &verification.CodeIssued{})
}

func TestLoginHandler_DeliveryFails_ShouldReturnDeliveryError(t *testing.T) {
	t.Parallel()

	s := NewLoginSuite()
	u := builders.NewUserBuilder().WithEmail("pending@example.com").Build()
	s.MockUsers.SeedUser(t, u)
	s.MockNotifier.FailEmailWith(errors.New("smtp: connection refused"))

	result, err := s.Handler.Handle(t.Context(), Login{Email: "pending@example.com"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsCode(err, errorx.CodeDeliveryFailed))

	// the issued code stays; the next login inside the cooldown throttles
	assert.Equal(t, 1, s.MockCodes.CodeCount(u.ID()))
}

func TestLoginHandler_InvalidEmail_ShouldReturnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
	}{
		{name: "empty", email: ""},
		{name: "malformed", email: "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewLoginSuite()
			result, err := s.Handler.Handle(t.Context(), Login{Email: tt.email})
			require.Error(t, err)
			assert.Nil(t, result)
		})
	}
}
