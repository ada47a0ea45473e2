package verification

import (
	"time"

	"gitlab.com/verigate/verigate-backend/internal/domain/event"
	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/randcode"
)

const (
	CodeLength = 6
	codeMin    = 100000
	codeMax    = 999999

	// ExpiryWindow is how long a code stays usable after issuance.
	ExpiryWindow = 5 * time.Minute
	// ResendCooldown is the minimum gap between issuances for one user.
	ResendCooldown = 1 * time.Minute
)

// AuthCode is one issued verification code. Records are append-only: a newer
// code supersedes every older one for the same user, it never replaces them
// in storage.
type AuthCode struct {
	event.Recorder
	userID    user.ID
	code      string
	createdAt time.Time
}

func NewAuthCode(userID user.ID) (*AuthCode, error) {
	const op = "verification.NewAuthCode"

	code, err := randcode.GenerateNumericCode(codeMin, codeMax)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	c := &AuthCode{
		userID:    userID,
		code:      code,
		createdAt: time.Now().UTC(),
	}

	c.Record(&CodeIssued{
		Header:   event.NewEventHeader(),
		UserID:   userID,
		IssuedAt: c.createdAt,
	})

	return c, nil
}

type RehydrateArgs struct {
	UserID    user.ID
	Code      string
	CreatedAt time.Time
}

func Rehydrate(args RehydrateArgs) *AuthCode {
	return &AuthCode{
		userID:    args.UserID,
		code:      args.Code,
		createdAt: args.CreatedAt,
	}
}

// Expired reports whether the code's age exceeds the expiry window at the
// given instant. A code exactly at the boundary is still valid.
func (c *AuthCode) Expired(now time.Time) bool {
	return now.Sub(c.createdAt) > ExpiryWindow
}

// Matches compares the supplied code verbatim; no trimming or normalization.
func (c *AuthCode) Matches(code string) bool {
	return c.code == code
}

// ThrottleRemaining returns how long the resend cooldown still has to run at
// the given instant, or zero if a new code may be issued.
func (c *AuthCode) ThrottleRemaining(now time.Time) time.Duration {
	remaining := c.createdAt.Add(ResendCooldown).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *AuthCode) UserID() user.ID {
	if c == nil {
		return user.ID{}
	}
	return c.userID
}

func (c *AuthCode) Code() string {
	if c == nil {
		return ""
	}
	return c.code
}

func (c *AuthCode) CreatedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.createdAt
}
