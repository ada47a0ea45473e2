package verification

import (
	"time"

	"gitlab.com/verigate/verigate-backend/internal/domain/event"
	"gitlab.com/verigate/verigate-backend/internal/domain/user"
)

const EventStreamName = "verigate.verification"

// CodeIssued deliberately omits the code value; it is for audit consumers,
// not for delivery. Delivery happens synchronously in the command handlers.
type CodeIssued struct {
	event.Header
	event.Otel
	UserID   user.ID   `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

func (e *CodeIssued) GetStreamName() string {
	return EventStreamName
}
