package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/tests/integration/builders"
	"gitlab.com/verigate/verigate-backend/tests/mocks"
)

type VerifySuite struct {
	Handler    *VerifyHandler
	MockUsers  *mocks.UserRepo
	MockCodes  *mocks.CodeRepo
	MockTokens *mocks.TokenIssuer
}

func NewVerifySuite() *VerifySuite {
	mockUsers := mocks.NewUserRepo()
	mockCodes := mocks.NewCodeRepo()
	mockTokens := mocks.NewTokenIssuer()
	handler := NewVerifyHandler(VerifyHandlerArgs{
		Users:  mockUsers,
		Codes:  mockCodes,
		Tokens: mockTokens,
	})

	return &VerifySuite{
		Handler:    handler,
		MockUsers:  mockUsers,
		MockCodes:  mockCodes,
		MockTokens: mockTokens,
	}
}

func (s *VerifySuite) SeedUserWithCode(t *testing.T, email, code string) *user.User {
	t.Helper()

	u := builders.NewUserBuilder().WithEmail(email).Build()
	s.MockUsers.SeedUser(t, u)
	s.MockCodes.SeedCode(t, builders.NewAuthCodeBuilder().
		WithUserID(u.ID()).
		WithCode(code).
		Build())

	return u
}

func TestVerifyHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	u := s.SeedUserWithCode(t, "pending@example.com", "482913")

	result, err := s.Handler.Handle(t.Context(), Verify{
		Email: "pending@example.com",
		Code:  "482913",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, u.ID(), result.User.ID())
	assert.True(t, result.User.IsVerified())

	stored := s.MockUsers.AssertUserExistsByEmail(t, "pending@example.com")
	require.NotNil(t, stored)
	assert.True(t, stored.IsVerified())

	verified := mocks.RequireEventExists(t, s.MockUsers.EventRepo, &user.Verified{})
	assert.Equal(t, u.ID(), verified.UserID)

	assert.Equal(t, []user.ID{u.ID()}, s.MockTokens.IssuedFor())
}

func TestVerifyHandler_UnknownEmail_ShouldReturnNotFound(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()

	result, err := s.Handler.Handle(t.Context(), Verify{
		Email: "ghost@example.com",
		Code:  "482913",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsNotFound(err))
}

func TestVerifyHandler_AlreadyVerified_ShouldReturnError(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	u := builders.NewUserBuilder().
		WithEmail("done@example.com").
		Verified().
		Build()
	s.MockUsers.SeedUser(t, u)
	s.MockCodes.SeedCode(t, builders.NewAuthCodeBuilder().
		WithUserID(u.ID()).
		WithCode("482913").
		Build())

	result, err := s.Handler.Handle(t.Context(), Verify{
		Email: "done@example.com",
		Code:  "482913",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, user.ErrAlreadyVerified)
	assert.Empty(t, s.MockTokens.IssuedFor())
}

func TestVerifyHandler_NoCodeIssued_ShouldReturnError(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	u := builders.NewUserBuilder().WithEmail("codeless@example.com").Build()
	s.MockUsers.SeedUser(t, u)

	result, err := s.Handler.Handle(t.Context(), Verify{
		Email: "codeless@example.com",
		Code:  "482913",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsCode(err, errorx.CodeNoCodeIssued))
}

func TestVerifyHandler_ExpiredCode_ShouldReturnError(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	u := builders.NewUserBuilder().WithEmail("slow@example.com").Build()
	s.MockUsers.SeedUser(t, u)
	s.MockCodes.SeedCode(t, builders.NewAuthCodeBuilder().
		WithUserID(u.ID()).
		WithCode("482913").
		Expired().
		Build())

	result, err := s.Handler.Handle(t.Context(), Verify{
		Email: "slow@example.com",
		Code:  "482913",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsCode(err, errorx.CodeExpired))

	stored := s.MockUsers.AssertUserExistsByEmail(t, "slow@example.com")
	require.NotNil(t, stored)
	assert.False(t, stored.IsVerified())
}

func TestVerifyHandler_WrongCode_ShouldReturnError(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	s.SeedUserWithCode(t, "pending@example.com", "482913")

	result, err := s.Handler.Handle(t.Context(), Verify{
		Email: "pending@example.com",
		Code:  "111111",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsCode(err, errorx.CodeInvalidCode))

	stored := s.MockUsers.AssertUserExistsByEmail(t, "pending@example.com")
	require.NotNil(t, stored)
	assert.False(t, stored.IsVerified())
	assert.Empty(t, s.MockTokens.IssuedFor())
}

// Only the latest code counts; an earlier, superseded code must be rejected.
func TestVerifyHandler_SupersededCode_ShouldReturnError(t *testing.T) {
	t.Parallel()

	s := NewVerifySuite()
	u := s.SeedUserWithCode(t, "pending@example.com", "111111")
	s.MockCodes.SeedCode(t, builders.NewAuthCodeBuilder().
		WithUserID(u.ID()).
		WithCode("222222").
		Build())

	result, err := s.Handler.Handle(t.Context(), Verify{
		Email: "pending@example.com",
		Code:  "111111",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errorx.IsCode(err, errorx.CodeInvalidCode))

	// the latest code still works
	result, err = s.Handler.Handle(t.Context(), Verify{
		Email: "pending@example.com",
		Code:  "222222",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.User.IsVerified())
}

func TestVerifyHandler_InvalidArgs_ShouldReturnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  Verify
	}{
		{name: "empty email", arg: Verify{Email: "", Code: "482913"}},
		{name: "empty code", arg: Verify{Email: "a@example.com", Code: ""}},
		{name: "short code", arg: Verify{Email: "a@example.com", Code: "4829"}},
		{name: "non numeric code", arg: Verify{Email: "a@example.com", Code: "48a913"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewVerifySuite()
			result, err := s.Handler.Handle(t.Context(), tt.arg)
			require.Error(t, err)
			assert.Nil(t, result)
		})
	}
}
