package builders

import (
	"time"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
)

type UserBuilder struct {
	id        user.ID
	email     string
	phone     string
	verified  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	now := time.Now().UTC()

	return &UserBuilder{
		id:        user.NewID(),
		email:     "test@example.com",
		phone:     "+15551234567",
		verified:  false,
		createdAt: now,
		updatedAt: now,
	}
}

func (b *UserBuilder) WithID(id user.ID) *UserBuilder {
	b.id = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.phone = phone
	return b
}

func (b *UserBuilder) Verified() *UserBuilder {
	b.verified = true
	return b
}

func (b *UserBuilder) Build() *user.User {
	return user.Rehydrate(user.RehydrateArgs{
		ID:        b.id,
		Email:     b.email,
		Phone:     b.phone,
		Verified:  b.verified,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	})
}

func (b *UserBuilder) BuildNew() (*user.User, error) {
	return user.NewUser(b.email, b.phone)
}
