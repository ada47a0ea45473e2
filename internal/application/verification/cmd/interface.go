package cmd

import (
	"context"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
)

var (
	tracer = otel.Tracer("verigate/application/verification/cmd")
	logger = otelslog.NewLogger("verigate/application/verification/cmd")
)

type UserRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	SaveUser(ctx context.Context, u *user.User) error
	// UpdateUserByEmail loads the user under a row lock, applies fn, and
	// persists the result in one transaction. The ctx passed to fn carries
	// the transaction so code reads/writes inside fn stay consistent.
	UpdateUserByEmail(ctx context.Context, email string, fn func(context.Context, *user.User) error) error
}

type CodeRepo interface {
	SaveCode(ctx context.Context, c *verification.AuthCode) error
	GetLatestCodeByUserID(ctx context.Context, userID user.ID) (*verification.AuthCode, error)
}

// Notifier delivers a code over a concrete transport. Calls block; a failed
// delivery surfaces to the caller, it is never retried here.
type Notifier interface {
	SendEmailCode(ctx context.Context, email, code string) error
	SendSMSCode(ctx context.Context, phone, code string) error
}

// TokenIssuer mints the opaque session token handed out after verification.
type TokenIssuer interface {
	Issue(ctx context.Context, u *user.User) (string, error)
}
