package notify

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/pkg/logging"
)

type EmailSender interface {
	SendEmailCode(ctx context.Context, email, code string) error
}

type SMSSender interface {
	SendSMSCode(ctx context.Context, phone, code string) error
}

// Notifier fans a code out to the concrete transport for the chosen channel.
type Notifier struct {
	tracer trace.Tracer
	logger *slog.Logger
	email  EmailSender
	sms    SMSSender
}

type NotifierArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Email  EmailSender
	SMS    SMSSender
}

func NewNotifier(args NotifierArgs) *Notifier {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &Notifier{
		tracer: args.Tracer,
		logger: args.Logger,
		email:  args.Email,
		sms:    args.SMS,
	}
}

func (n *Notifier) SendEmailCode(ctx context.Context, email, code string) error {
	ctx, span := n.tracer.Start(ctx, "Notifier.SendEmailCode",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(email))))
	defer span.End()

	if err := n.email.SendEmailCode(ctx, email, code); err != nil {
		span.RecordError(err)
		return err
	}

	n.logger.InfoContext(ctx, "verification code emailed",
		slog.String("email", logging.RedactEmail(email)))
	return nil
}

func (n *Notifier) SendSMSCode(ctx context.Context, phone, code string) error {
	ctx, span := n.tracer.Start(ctx, "Notifier.SendSMSCode",
		trace.WithAttributes(attribute.String("phone", logging.RedactPhone(phone))))
	defer span.End()

	if err := n.sms.SendSMSCode(ctx, phone, code); err != nil {
		span.RecordError(err)
		return err
	}

	n.logger.InfoContext(ctx, "verification code texted",
		slog.String("phone", logging.RedactPhone(phone)))
	return nil
}

// LogNotifier writes codes to the log instead of delivering them. It backs
// local and test environments where no SMTP or SMS gateway is running.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(l *slog.Logger) *LogNotifier {
	if l == nil {
		l = logger
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) SendEmailCode(ctx context.Context, email, code string) error {
	n.logger.InfoContext(ctx, "verification code issued (log delivery)",
		slog.String("email", email),
		slog.String("code", code))
	return nil
}

func (n *LogNotifier) SendSMSCode(ctx context.Context, phone, code string) error {
	n.logger.InfoContext(ctx, "verification code issued (log delivery)",
		slog.String("phone", phone),
		slog.String("code", code))
	return nil
}
