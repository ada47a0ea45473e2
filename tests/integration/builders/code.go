package builders

import (
	"time"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
)

type AuthCodeBuilder struct {
	userID    user.ID
	code      string
	createdAt time.Time
}

func NewAuthCodeBuilder() *AuthCodeBuilder {
	return &AuthCodeBuilder{
		userID:    user.NewID(),
		code:      "482913",
		createdAt: time.Now().UTC(),
	}
}

func (b *AuthCodeBuilder) WithUserID(userID user.ID) *AuthCodeBuilder {
	b.userID = userID
	return b
}

func (b *AuthCodeBuilder) WithCode(code string) *AuthCodeBuilder {
	b.code = code
	return b
}

func (b *AuthCodeBuilder) WithCreatedAt(createdAt time.Time) *AuthCodeBuilder {
	b.createdAt = createdAt
	return b
}

func (b *AuthCodeBuilder) Expired() *AuthCodeBuilder {
	b.createdAt = time.Now().UTC().Add(-verification.ExpiryWindow - time.Minute)
	return b
}

// ResendAvailable backdates the code past the cooldown but inside the expiry
// window, so a resend is allowed while the code itself still validates.
func (b *AuthCodeBuilder) ResendAvailable() *AuthCodeBuilder {
	b.createdAt = time.Now().UTC().Add(-verification.ResendCooldown - time.Second)
	return b
}

func (b *AuthCodeBuilder) Build() *verification.AuthCode {
	return verification.Rehydrate(verification.RehydrateArgs{
		UserID:    b.userID,
		Code:      b.code,
		CreatedAt: b.createdAt,
	})
}
