package mailevent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/valueobject/mails"
	"gitlab.com/verigate/verigate-backend/pkg/logging"
)

type UserVerifiedHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	mailsender MailSender
}

type UserVerifiedHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Mailsender MailSender
}

func NewUserVerifiedHandler(args UserVerifiedHandlerArgs) *UserVerifiedHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &UserVerifiedHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		mailsender: args.Mailsender,
	}
}

func (h *UserVerifiedHandler) Handle(ctx context.Context, e *user.Verified) error {
	if e == nil {
		return nil
	}

	l := h.logger.With(
		slog.String("event", "UserVerified"),
		slog.String("user.id", e.UserID.String()),
		slog.String("user.email", logging.RedactEmail(e.Email)))

	ctx, span := h.tracer.Start(
		ctx,
		"UserVerifiedHandler.Handle",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("user.id", e.UserID.String()),
			attribute.String("user.email", logging.RedactEmail(e.Email))),
	)
	defer span.End()

	err := validation.ValidateStruct(e, validation.Field(&e.Email, validation.Required, is.EmailFormat))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid user verified event data")
		l.ErrorContext(ctx, "invalid user verified event data", "error", err.Error())
		return err
	}

	payload := mails.Payload{
		To:      e.Email,
		Subject: "Welcome to Verigate",
		Body: fmt.Sprintf(
			"Hello,\n\nYour account %s is now verified. You can log in right away.\n\nBest regards,\nVerigate Team",
			e.Email,
		),
	}

	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send welcome email")
		l.ErrorContext(ctx, "failed to send welcome email", slog.Any("error", err))
		return err
	}

	return nil
}
