package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event. The stream name decides
// which outbox topic the event lands on.
type Event interface {
	GetEventHeader() Header
	GetStreamName() string
}

type Header struct {
	ID        uuid.UUID
	Timestamp time.Time
	Metadata  map[string]string
}

func (h *Header) GetEventHeader() Header {
	return *h
}

func NewEventHeader() Header {
	return Header{
		ID:        uuid.New(),
		Timestamp: time.Now(),
	}
}

// Recorder collects domain events on an aggregate until the repository
// publishes them in the same transaction as the state change.
type Recorder struct {
	events []Event
}

func (r *Recorder) Record(e Event) {
	if r == nil {
		return
	}
	r.events = append(r.events, e)
}

func (r *Recorder) Uncommitted() []Event {
	if r == nil {
		return nil
	}
	return r.events
}

func (r *Recorder) MarkCommitted() {
	if r == nil {
		return
	}
	r.events = nil
}
