package mocks

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/verigate/verigate-backend/internal/domain/event"
)

// EventRepo records every domain event a mock repository persists. It is
// embedded by the other mocks so tests can assert on emitted events.
type EventRepo struct {
	mu     sync.Mutex
	events []event.Event
}

func NewEventRepo() *EventRepo {
	return &EventRepo{}
}

func (r *EventRepo) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRepo) AssertEventCount(t *testing.T, want int) *EventRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) != want {
		t.Errorf("expected %d events, got %d", want, len(r.events))
	}
	return r
}

func (r *EventRepo) AssertEventNotExists(t *testing.T, e event.Event) *EventRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ev := range r.events {
		if fmt.Sprintf("%T", ev) == fmt.Sprintf("%T", e) {
			t.Errorf("expected no %T event, but one was recorded", e)
			break
		}
	}
	return r
}

func (r *EventRepo) appendEvents(events ...event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, events...)
}

// RequireEventExists finds the first recorded event of e's type and returns
// it typed, failing the test when none was recorded.
func RequireEventExists[T event.Event](t *testing.T, r *EventRepo, e T) T {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ev := range r.events {
		if fmt.Sprintf("%T", ev) == fmt.Sprintf("%T", e) {
			got, ok := ev.(T)
			if !ok || any(got) == nil {
				break
			}
			assert.NotEmpty(t, got.GetEventHeader(), "event header should not be empty")
			return got
		}
	}

	t.Fatalf("event %T not found in repository", e)
	return *new(T)
}
