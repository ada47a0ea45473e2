package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/logging"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
	"gitlab.com/verigate/verigate-backend/pkg/validationx"
)

type Verify struct {
	Email string
	Code  string
}

func (c Verify) Validate() error {
	return validation.Errors{
		"email": validation.Validate(c.Email, validationx.EmailRules...),
		"code":  validation.Validate(c.Code, validationx.CodeRules...),
	}.Filter()
}

// VerifyResult carries the freshly minted session token together with the
// verified user snapshot.
type VerifyResult struct {
	Token string
	User  *user.User
}

type VerifyHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	users  UserRepo
	codes  CodeRepo
	tokens TokenIssuer
}

type VerifyHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Users  UserRepo
	Codes  CodeRepo
	Tokens TokenIssuer
}

func NewVerifyHandler(args VerifyHandlerArgs) *VerifyHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &VerifyHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		users:  args.Users,
		codes:  args.Codes,
		tokens: args.Tokens,
	}
}

func (h *VerifyHandler) Handle(ctx context.Context, cmd Verify) (*VerifyResult, error) {
	const op = "cmd.VerifyHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "VerifyHandler.Handle",
		trace.WithAttributes(
			attribute.String("user.email", logging.RedactEmail(cmd.Email)),
		))
	defer span.End()

	if err := cmd.Validate(); err != nil {
		otelx.RecordSpanError(span, err, "invalid verify command")
		return nil, errorx.Wrap(err, op)
	}

	var verified *user.User
	// The whole check-and-flip runs under the row lock so two concurrent
	// verify calls cannot both observe the unverified state.
	err := h.users.UpdateUserByEmail(ctx, cmd.Email, func(ctx context.Context, u *user.User) error {
		if u.IsVerified() {
			return user.ErrAlreadyVerified
		}

		latest, err := h.codes.GetLatestCodeByUserID(ctx, u.ID())
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.NewNoCodeIssued()
			}
			return err
		}

		if latest.Expired(time.Now().UTC()) {
			return errorx.NewCodeExpired()
		}

		if !latest.Matches(cmd.Code) {
			return errorx.NewInvalidVerificationCode()
		}

		if err := u.MarkVerified(); err != nil {
			return err
		}

		verified = u
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to verify user")
		return nil, errorx.Wrap(err, op)
	}

	token, err := h.tokens.Issue(ctx, verified)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to issue session token")
		return nil, errorx.Wrap(err, op)
	}

	h.logger.InfoContext(ctx, "user verified",
		slog.String("user.id", verified.ID().String()),
	)

	return &VerifyResult{Token: token, User: verified}, nil
}
