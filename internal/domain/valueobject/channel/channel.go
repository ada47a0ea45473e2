package channel

import "github.com/ARUMANDESU/validation"

// Channel names a delivery transport for verification codes.
type Channel string

const (
	Email Channel = "email"
	SMS   Channel = "sms"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) Validate() error {
	return validation.Validate(c.String(), validation.Required, validation.In(Email.String(), SMS.String()))
}

var ErrUnknownChannel = validation.NewError(
	"validation_unknown_channel",
	"must be either email or sms",
)

// Rules validates a channel field, whether it is typed as Channel or as the
// raw string of a request body.
var Rules = []validation.Rule{
	validation.Required,
	validation.By(func(value any) error {
		var c Channel
		switch v := value.(type) {
		case Channel:
			c = v
		case string:
			c = Channel(v)
		default:
			return ErrUnknownChannel
		}

		if c == "" {
			return nil // Required handles emptiness
		}
		return c.Validate()
	}),
}
