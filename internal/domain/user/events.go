package user

import "gitlab.com/verigate/verigate-backend/internal/domain/event"

const EventStreamName = "verigate.users"

type Registered struct {
	event.Header
	event.Otel
	UserID ID     `json:"user_id"`
	Email  string `json:"email"`
}

func (e *Registered) GetStreamName() string {
	return EventStreamName
}

type ContactChanged struct {
	event.Header
	event.Otel
	UserID ID     `json:"user_id"`
	Email  string `json:"email"`
}

func (e *ContactChanged) GetStreamName() string {
	return EventStreamName
}

type Verified struct {
	event.Header
	event.Otel
	UserID ID     `json:"user_id"`
	Email  string `json:"email"`
}

func (e *Verified) GetStreamName() string {
	return EventStreamName
}
