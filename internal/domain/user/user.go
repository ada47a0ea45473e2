package user

import (
	"encoding/json"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"

	"gitlab.com/verigate/verigate-backend/internal/domain/event"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/validationx"
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func ParseID(s string) (ID, error) {
	uid, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(uid), nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(id).String())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	uid, err := uuid.Parse(s)
	if err != nil {
		return err
	}

	*id = ID(uid)
	return nil
}

// User is the aggregate gating the Unverified -> Verified transition.
// Verification is monotonic: once verified, a user never goes back, and the
// contact fields freeze.
type User struct {
	event.Recorder
	id        ID
	email     string
	phone     string
	verified  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(email, phone string) (*User, error) {
	const op = "user.NewUser"

	err := validation.Errors{
		"email": validation.Validate(email, validationx.EmailRules...),
		"phone": validation.Validate(phone, validationx.PhoneRules...),
	}.Filter()
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	now := time.Now().UTC()

	u := &User{
		id:        NewID(),
		email:     email,
		phone:     phone,
		verified:  false,
		createdAt: now,
		updatedAt: now,
	}

	u.Record(&Registered{
		Header: event.NewEventHeader(),
		UserID: u.id,
		Email:  email,
	})

	return u, nil
}

type RehydrateArgs struct {
	ID        ID
	Email     string
	Phone     string
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Rehydrate(args RehydrateArgs) *User {
	return &User{
		id:        args.ID,
		email:     args.Email,
		phone:     args.Phone,
		verified:  args.Verified,
		createdAt: args.CreatedAt,
		updatedAt: args.UpdatedAt,
	}
}

// ChangeContact replaces both contact fields. Only these two fields are ever
// mutable, and only while the user is unverified.
func (u *User) ChangeContact(email, phone string) error {
	const op = "user.User.ChangeContact"

	if u.verified {
		return errorx.Wrap(ErrAlreadyVerified, op)
	}

	err := validation.Errors{
		"email": validation.Validate(email, validationx.EmailRules...),
		"phone": validation.Validate(phone, validationx.PhoneRules...),
	}.Filter()
	if err != nil {
		return errorx.Wrap(err, op)
	}

	u.email = email
	u.phone = phone
	u.updatedAt = time.Now().UTC()

	u.Record(&ContactChanged{
		Header: event.NewEventHeader(),
		UserID: u.id,
		Email:  email,
	})

	return nil
}

// MarkVerified performs the terminal state transition.
func (u *User) MarkVerified() error {
	const op = "user.User.MarkVerified"

	if u.verified {
		return errorx.Wrap(ErrAlreadyVerified, op)
	}

	u.verified = true
	u.updatedAt = time.Now().UTC()

	u.Record(&Verified{
		Header: event.NewEventHeader(),
		UserID: u.id,
		Email:  u.email,
	})

	return nil
}

func (u *User) ID() ID {
	if u == nil {
		return ID{}
	}
	return u.id
}

func (u *User) Email() string {
	if u == nil {
		return ""
	}
	return u.email
}

func (u *User) Phone() string {
	if u == nil {
		return ""
	}
	return u.phone
}

func (u *User) IsVerified() bool {
	if u == nil {
		return false
	}
	return u.verified
}

func (u *User) CreatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}
	return u.updatedAt
}
