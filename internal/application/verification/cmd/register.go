package cmd

import (
	"context"
	"log/slog"

	"github.com/ARUMANDESU/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/valueobject/channel"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/logging"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
	"gitlab.com/verigate/verigate-backend/pkg/validationx"
)

type Register struct {
	Email   string
	Phone   string
	Channel channel.Channel
}

// Validate runs before anything is persisted, including the channel check.
// A bad channel therefore never consumes a code.
func (c Register) Validate() error {
	return validation.Errors{
		"email":   validation.Validate(c.Email, validationx.EmailRules...),
		"phone":   validation.Validate(c.Phone, validationx.PhoneRules...),
		"channel": c.Channel.Validate(),
	}.Filter()
}

type RegisterHandler struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	users    UserRepo
	codes    CodeRepo
	notifier Notifier
}

type RegisterHandlerArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Users    UserRepo
	Codes    CodeRepo
	Notifier Notifier
}

func NewRegisterHandler(args RegisterHandlerArgs) *RegisterHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &RegisterHandler{
		tracer:   args.Tracer,
		logger:   args.Logger,
		users:    args.Users,
		codes:    args.Codes,
		notifier: args.Notifier,
	}
}

func (h *RegisterHandler) Handle(ctx context.Context, cmd Register) error {
	const op = "cmd.RegisterHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "RegisterHandler.Handle",
		trace.WithAttributes(
			attribute.String("user.email", logging.RedactEmail(cmd.Email)),
			attribute.String("channel", cmd.Channel.String()),
		))
	defer span.End()

	if err := cmd.Validate(); err != nil {
		otelx.RecordSpanError(span, err, "invalid register command")
		return errorx.Wrap(err, op)
	}

	existing, err := h.users.GetUserByEmail(ctx, cmd.Email)
	if err != nil && !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to get user by email")
		return errorx.Wrap(err, op)
	}

	var u *user.User
	switch {
	case existing == nil:
		u, err = user.NewUser(cmd.Email, cmd.Phone)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to create user")
			return errorx.Wrap(err, op)
		}
		if err := h.users.SaveUser(ctx, u); err != nil {
			otelx.RecordSpanError(span, err, "failed to save user")
			return errorx.Wrap(err, op)
		}
		span.AddEvent("user created")

	case existing.IsVerified():
		otelx.RecordSpanError(span, user.ErrAlreadyVerified, "user already verified")
		return errorx.Wrap(user.ErrAlreadyVerified, op)

	default:
		// idempotent re-registration: refresh contact fields in place
		err = h.users.UpdateUserByEmail(ctx, cmd.Email, func(ctx context.Context, locked *user.User) error {
			if err := locked.ChangeContact(cmd.Email, cmd.Phone); err != nil {
				return err
			}
			u = locked
			return nil
		})
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update user contact info")
			return errorx.Wrap(err, op)
		}
		span.AddEvent("existing unverified user updated")
	}

	code, err := h.issueCode(ctx, u.ID())
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to issue verification code")
		return errorx.Wrap(err, op)
	}

	// Delivery happens after persistence and is not rolled back on failure;
	// the caller retries by registering again or via login.
	if err := h.dispatch(ctx, cmd.Channel, u, code.Code()); err != nil {
		otelx.RecordSpanError(span, err, "failed to deliver verification code")
		return errorx.Wrap(err, op)
	}

	h.logger.InfoContext(ctx, "verification code issued",
		slog.String("user.id", u.ID().String()),
		slog.String("channel", cmd.Channel.String()),
	)

	return nil
}

func (h *RegisterHandler) issueCode(ctx context.Context, userID user.ID) (*verification.AuthCode, error) {
	code, err := verification.NewAuthCode(userID)
	if err != nil {
		return nil, err
	}

	if err := h.codes.SaveCode(ctx, code); err != nil {
		return nil, err
	}

	return code, nil
}

func (h *RegisterHandler) dispatch(ctx context.Context, ch channel.Channel, u *user.User, code string) error {
	var err error
	switch ch {
	case channel.Email:
		err = h.notifier.SendEmailCode(ctx, u.Email(), code)
	case channel.SMS:
		err = h.notifier.SendSMSCode(ctx, u.Phone(), code)
	default:
		return errorx.NewInvalidRequest()
	}
	if err != nil {
		return errorx.NewDeliveryFailed().WithCause(err)
	}

	return nil
}
