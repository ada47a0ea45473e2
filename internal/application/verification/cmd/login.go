package cmd

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/logging"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
	"gitlab.com/verigate/verigate-backend/pkg/validationx"
)

type Login struct {
	Email string
}

func (c Login) Validate() error {
	return validation.Errors{
		"email": validation.Validate(c.Email, validationx.EmailRules...),
	}.Filter()
}

// LoginResult reports whether a login completed outright or kicked off
// another verification round. Resent is false for verified users.
type LoginResult struct {
	User   *user.User
	Resent bool
}

type LoginHandler struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	users    UserRepo
	codes    CodeRepo
	notifier Notifier
}

type LoginHandlerArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Users    UserRepo
	Codes    CodeRepo
	Notifier Notifier
}

func NewLoginHandler(args LoginHandlerArgs) *LoginHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &LoginHandler{
		tracer:   args.Tracer,
		logger:   args.Logger,
		users:    args.Users,
		codes:    args.Codes,
		notifier: args.Notifier,
	}
}

func (h *LoginHandler) Handle(ctx context.Context, cmd Login) (*LoginResult, error) {
	const op = "cmd.LoginHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "LoginHandler.Handle",
		trace.WithAttributes(
			attribute.String("user.email", logging.RedactEmail(cmd.Email)),
		))
	defer span.End()

	if err := cmd.Validate(); err != nil {
		otelx.RecordSpanError(span, err, "invalid login command")
		return nil, errorx.Wrap(err, op)
	}

	var (
		result LoginResult
		issued *verification.AuthCode
	)
	// Throttle check and issuance share the row lock so two concurrent logins
	// for the same user cannot both slip under the cooldown.
	err := h.users.UpdateUserByEmail(ctx, cmd.Email, func(ctx context.Context, u *user.User) error {
		result.User = u

		if u.IsVerified() {
			return nil
		}

		latest, err := h.codes.GetLatestCodeByUserID(ctx, u.ID())
		if err != nil && !errorx.IsNotFound(err) {
			return err
		}

		if latest != nil {
			if remaining := latest.ThrottleRemaining(time.Now().UTC()); remaining > 0 {
				retryAfter := int(math.Ceil(remaining.Seconds()))
				return errorx.NewResendThrottled(retryAfter)
			}
		}

		issued, err = verification.NewAuthCode(u.ID())
		if err != nil {
			return err
		}

		return h.codes.SaveCode(ctx, issued)
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to log user in")
		return nil, errorx.Wrap(err, op)
	}

	if issued == nil {
		span.AddEvent("verified login")
		return &result, nil
	}

	// Delivery runs after the transaction committed; a send failure leaves the
	// issued code in place and surfaces as a delivery error.
	if err := h.notifier.SendEmailCode(ctx, result.User.Email(), issued.Code()); err != nil {
		deliveryErr := errorx.NewDeliveryFailed().WithCause(err)
		otelx.RecordSpanError(span, deliveryErr, "failed to deliver verification code")
		return nil, errorx.Wrap(deliveryErr, op)
	}

	result.Resent = true

	h.logger.InfoContext(ctx, "verification code resent on login",
		slog.String("user.id", result.User.ID().String()),
	)

	return &result, nil
}
