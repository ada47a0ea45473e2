package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/valueobject/channel"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/tests/integration/builders"
	"gitlab.com/verigate/verigate-backend/tests/mocks"
)

type RegisterSuite struct {
	Handler      *RegisterHandler
	MockUsers    *mocks.UserRepo
	MockCodes    *mocks.CodeRepo
	MockNotifier *mocks.Notifier
}

func NewRegisterSuite() *RegisterSuite {
	mockUsers := mocks.NewUserRepo()
	mockCodes := mocks.NewCodeRepo()
	mockNotifier := mocks.NewNotifier()
	handler := NewRegisterHandler(RegisterHandlerArgs{
		Users:    mockUsers,
		Codes:    mockCodes,
		Notifier: mockNotifier,
	})

	return &RegisterSuite{
		Handler:      handler,
		MockUsers:    mockUsers,
		MockCodes:    mockCodes,
		MockNotifier: mockNotifier,
	}
}

func TestRegisterHandler_NewUser_Email(t *testing.T) {
	t.Parallel()

	s := NewRegisterSuite()

	err := s.Handler.Handle(t.Context(), Register{
		Email:   "newcomer@example.com",
		Phone:   "+15551234567",
		Channel: channel.Email,
	})
	require.NoError(t, err)

	u := s.MockUsers.AssertUserExistsByEmail(t, "newcomer@example.com")
	require.NotNil(t, u)
	assert.False(t, u.IsVerified())
	assert.Equal(t, "+15551234567", u.Phone())

	assert.Equal(t, 1, s.MockCodes.CodeCount(u.ID()))

	sent := s.MockNotifier.RequireLastSent(t)
	assert.Equal(t, "newcomer@example.com", sent.Recipient)
	assert.Equal(t, "email", sent.Channel)
	assert.Len(t, sent.Code, verification.CodeLength)

	registered := mocks.RequireEventExists(t, s.MockUsers.EventRepo, &user.Registered{})
	assert.Equal(t, u.ID(), registered.UserID)
	mocks.RequireEventExists(t, s.MockCodes.EventRepo, &verification.CodeIssued{})
}

func TestRegisterHandler_NewUser_SMS(t *testing.T) {
	t.Parallel()

	s := NewRegisterSuite()

	err := s.Handler.Handle(t.Context(), Register{
		Email:   "newcomer@example.com",
		Phone:   "+15551234567",
		Channel: channel.SMS,
	})
	require.NoError(t, err)

	sent := s.MockNotifier.RequireLastSent(t)
	assert.Equal(t, "+15551234567", sent.Recipient)
	assert.Equal(t, "sms", sent.Channel)
}

func TestRegisterHandler_ExistingUnverified_UpdatesContact(t *testing.T) {
	t.Parallel()

	s := NewRegisterSuite()
	existing := builders.NewUserBuilder().
		WithEmail("returning@example.com").
		WithPhone("+15550000001").
		Build()
	s.MockUsers.SeedUser(t, existing)

	err := s.Handler.Handle(t.Context(), Register{
		Email:   "returning@example.com",
		Phone:   "+15550000002",
		Channel: channel.Email,
	})
	require.NoError(t, err)

	u := s.MockUsers.AssertUserExistsByEmail(t, "returning@example.com")
	require.NotNil(t, u)
	assert.Equal(t, existing.ID(), u.ID())
	assert.Equal(t, "+15550000002", u.Phone())
	assert.False(t, u.IsVerified())

	assert.Equal(t, 1, s.MockCodes.CodeCount(existing.ID()))
	mocks.RequireEventExists(t, s.MockUsers.EventRepo, &user.ContactChanged{})
}

func TestRegisterHandler_AlreadyVerified_ShouldReturnError(t *testing.T) {
	t.Parallel()

	s := NewRegisterSuite()
	verified := builders.NewUserBuilder().
		WithEmail("done@example.com").
		Verified().
		Build()
	s.MockUsers.SeedUser(t, verified)

	err := s.Handler.Handle(t.Context(), Register{
		Email:   "done@example.com",
		Phone:   "+15551234567",
		Channel: channel.Email,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrAlreadyVerified)

	assert.Equal(t, 0, s.MockCodes.CodeCount(verified.ID()))
	s.MockNotifier.AssertNothingSent(t)
}

func TestRegisterHandler_InvalidArgs_ShouldReturnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  Register
	}{
		{
			name: "empty email",
			arg:  Register{Email: "", Phone: "+15551234567", Channel: channel.Email},
		},
		{
			name: "malformed email",
			arg:  Register{Email: "not-an-email", Phone: "+15551234567", Channel: channel.Email},
		},
		{
			name: "empty phone",
			arg:  Register{Email: "a@example.com", Phone: "", Channel: channel.Email},
		},
		{
			name: "phone without plus",
			arg:  Register{Email: "a@example.com", Phone: "15551234567", Channel: channel.SMS},
		},
		{
			name: "unknown channel",
			arg:  Register{Email: "a@example.com", Phone: "+15551234567", Channel: channel.Channel("carrier-pigeon")},
		},
		{
			name: "empty channel",
			arg:  Register{Email: "a@example.com", Phone: "+15551234567"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewRegisterSuite()
			err := s.Handler.Handle(t.Context(), tt.arg)
			require.Error(t, err)

			s.MockUsers.AssertUserNotExistsByEmail(t, tt.arg.Email)
			s.MockNotifier.AssertNothingSent(t)
			s.MockUsers.AssertEventCount(t, 0)
		})
	}
}

// A bad channel must be rejected before any persistence; no user record and
// no code may exist afterwards.
func TestRegisterHandler_UnknownChannel_NothingPersisted(t *testing.T) {
	t.Parallel()

	s := NewRegisterSuite()

	err := s.Handler.Handle(t.Context(), Register{
		Email:   "newcomer@example.com",
		Phone:   "+15551234567",
		Channel: channel.Channel("fax"),
	})
	require.Error(t, err)

	s.MockUsers.AssertUserNotExistsByEmail(t, "newcomer@example.com")
	s.MockUsers.AssertEventCount(t, 0)
	s.MockCodes.AssertEventCount(t, 0)
}

func TestRegisterHandler_DeliveryFails_ShouldReturnDeliveryError(t *testing.T) {
	t.Parallel()

	s := NewRegisterSuite()
	s.MockNotifier.FailEmailWith(errors.New("smtp: connection refused"))

	err := s.Handler.Handle(t.Context(), Register{
		Email:   "newcomer@example.com",
		Phone:   "+15551234567",
		Channel: channel.Email,
	})
	require.Error(t, err)
	assert.True(t, errorx.IsCode(err, errorx.CodeDeliveryFailed))

	// user and code stay persisted, only the send failed
	u := s.MockUsers.AssertUserExistsByEmail(t, "newcomer@example.com")
	require.NotNil(t, u)
	assert.Equal(t, 1, s.MockCodes.CodeCount(u.ID()))
}
