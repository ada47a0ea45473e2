package authapp

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/verigate/verigate-backend/tests/integration/builders"
)

const testSecretKey = "test-secret-key"

func TestApp_Issue(t *testing.T) {
	t.Parallel()

	app := NewApp(Args{SecretKey: testSecretKey})
	u := builders.NewUserBuilder().Verified().Build()

	token, err := app.Issue(t.Context(), u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	NewJWTTokenAssertion(t, token, []byte(testSecretKey)).
		AssertValid().
		AssertISS(Issuer).
		AssertSub("user").
		AssertUID(u.ID().String()).
		AssertExp(time.Now().Add(TokenExpDuration))
}

func TestApp_Issue_CustomExpiry(t *testing.T) {
	t.Parallel()

	exp := 5 * time.Minute
	app := NewApp(Args{SecretKey: testSecretKey, TokenExpDuration: &exp})
	u := builders.NewUserBuilder().Verified().Build()

	token, err := app.Issue(t.Context(), u)
	require.NoError(t, err)

	NewJWTTokenAssertion(t, token, []byte(testSecretKey)).
		AssertValid().
		AssertExp(time.Now().Add(exp))
}

func TestApp_Issue_WrongKeyFailsParse(t *testing.T) {
	t.Parallel()

	app := NewApp(Args{SecretKey: testSecretKey})
	u := builders.NewUserBuilder().Verified().Build()

	token, err := app.Issue(t.Context(), u)
	require.NoError(t, err)

	_, err = jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("other-key"), nil
	})
	assert.Error(t, err, "parsing with the wrong key must fail")
}
