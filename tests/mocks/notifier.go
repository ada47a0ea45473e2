package mocks

import (
	"context"
	"sync"
	"testing"
)

type SentCode struct {
	Recipient string
	Code      string
	Channel   string
}

// Notifier records every delivery attempt and can be told to fail.
type Notifier struct {
	sent     []SentCode
	emailErr error
	smsErr   error
	mu       sync.Mutex
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) SendEmailCode(ctx context.Context, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.emailErr != nil {
		return n.emailErr
	}

	n.sent = append(n.sent, SentCode{Recipient: email, Code: code, Channel: "email"})
	return nil
}

func (n *Notifier) SendSMSCode(ctx context.Context, phone, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.smsErr != nil {
		return n.smsErr
	}

	n.sent = append(n.sent, SentCode{Recipient: phone, Code: code, Channel: "sms"})
	return nil
}

func (n *Notifier) FailEmailWith(err error) *Notifier {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.emailErr = err
	return n
}

func (n *Notifier) FailSMSWith(err error) *Notifier {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.smsErr = err
	return n
}

func (n *Notifier) Sent() []SentCode {
	n.mu.Lock()
	defer n.mu.Unlock()

	sentCopy := make([]SentCode, len(n.sent))
	copy(sentCopy, n.sent)
	return sentCopy
}

func (n *Notifier) AssertNothingSent(t *testing.T) *Notifier {
	t.Helper()

	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.sent) != 0 {
		t.Errorf("expected no deliveries, but got %d", len(n.sent))
	}

	return n
}

func (n *Notifier) RequireLastSent(t *testing.T) SentCode {
	t.Helper()

	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.sent) == 0 {
		t.Fatal("expected at least one delivery, but got none")
	}

	return n.sent[len(n.sent)-1]
}
