package authapp

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
)

const (
	Issuer           = "verigate_auth"
	TokenExpDuration = 30 * time.Minute
)

var (
	tracer = otel.Tracer("verigate/application/auth")
	logger = otelslog.NewLogger("verigate/application/auth")
)

// App mints session tokens for verified users. It satisfies the command
// layer's TokenIssuer.
type App struct {
	tracer trace.Tracer
	logger *slog.Logger

	tokenExpDuration time.Duration
	secretKey        []byte
	signingMethod    *jwt.SigningMethodHMAC
}

type Args struct {
	Tracer trace.Tracer
	Logger *slog.Logger

	SecretKey        string
	TokenExpDuration *time.Duration
}

func NewApp(args Args) *App {
	app := &App{
		tracer: tracer,
		logger: logger,

		tokenExpDuration: TokenExpDuration,
		secretKey:        []byte(args.SecretKey),
		signingMethod:    jwt.SigningMethodHS256,
	}

	if args.TokenExpDuration != nil {
		app.tokenExpDuration = *args.TokenExpDuration
	}
	if args.Tracer != nil {
		app.tracer = args.Tracer
	}
	if args.Logger != nil {
		app.logger = args.Logger
	}

	return app
}

func (a *App) Issue(ctx context.Context, u *user.User) (string, error) {
	_, span := a.tracer.Start(
		ctx,
		"App.Issue",
		trace.WithAttributes(
			attribute.String("signing_method", a.signingMethod.Alg()),
			attribute.String("token_exp_duration", a.tokenExpDuration.String()),
			attribute.String("user.id", u.ID().String()),
		),
	)
	defer span.End()

	now := time.Now()
	token := jwt.NewWithClaims(a.signingMethod, jwt.MapClaims{
		"iss": Issuer,
		"sub": "user",
		"exp": now.Add(a.tokenExpDuration).Unix(),
		"iat": now.Unix(),
		"jti": uuid.New().String(),
		"uid": u.ID().String(),
	})

	signed, err := token.SignedString(a.secretKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign session token")
		return "", err
	}

	return signed, nil
}

type JWTTokenAssertion struct {
	token    string
	jwttoken *jwt.Token
	claims   jwt.MapClaims
	t        *testing.T
}

func NewJWTTokenAssertion(t *testing.T, token string, secretkey []byte) *JWTTokenAssertion {
	t.Helper()

	jwttoken, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return secretkey, nil
	})
	require.NoError(t, err)

	claims, ok := jwttoken.Claims.(jwt.MapClaims)
	require.True(t, ok, "jwt token claims must be type jwt.MapClaims")

	return &JWTTokenAssertion{
		t:        t,
		token:    token,
		jwttoken: jwttoken,
		claims:   claims,
	}
}

func (a *JWTTokenAssertion) AssertValid() *JWTTokenAssertion {
	a.t.Helper()
	assert.NotNil(a.t, a.jwttoken, "jwt token should not be nil")
	assert.True(a.t, a.jwttoken.Valid, "jwt token should be valid")
	return a
}

func (a *JWTTokenAssertion) AssertISS(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, expected, a.claims["iss"])
	return a
}

func (a *JWTTokenAssertion) AssertSub(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, expected, a.claims["sub"])
	return a
}

func (a *JWTTokenAssertion) AssertUID(expected string) *JWTTokenAssertion {
	a.t.Helper()
	assert.Equal(a.t, expected, a.claims["uid"])
	return a
}

func (a *JWTTokenAssertion) AssertExp(expected time.Time) *JWTTokenAssertion {
	a.t.Helper()
	exp, ok := a.claims["exp"].(float64)
	require.True(a.t, ok, "exp claim must be of type float64, got %T", a.claims["exp"])
	assert.NotZero(a.t, exp, "exp claim should not be zero")
	expTime := time.Unix(int64(exp), 0)
	assert.WithinDuration(a.t, expected, expTime, time.Second, "exp claim should be within 1 second of expected time")
	return a
}
