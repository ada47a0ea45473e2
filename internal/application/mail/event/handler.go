package mailevent

import (
	"context"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"gitlab.com/verigate/verigate-backend/internal/domain/valueobject/mails"
)

var (
	tracer = otel.Tracer("verigate/application/mail/event")
	logger = otelslog.NewLogger("verigate/application/mail/event")
)

type MailSender interface {
	SendMail(ctx context.Context, payload mails.Payload) error
}
