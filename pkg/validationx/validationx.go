package validationx

import (
	"regexp"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
)

// E.164: a '+', a non-zero leading digit, and up to 14 further digits.
var phoneRegex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

var ErrInvalidPhoneFormat = validation.NewError(
	"validation_is_e164",
	"must be a valid phone number in international format",
)

var IsPhone = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required handles emptiness
	}

	if !phoneRegex.MatchString(s) {
		return ErrInvalidPhoneFormat
	}
	return nil
})

var (
	EmailRules = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(5, 255),
	}

	PhoneRules = []validation.Rule{
		validation.Required,
		IsPhone,
	}

	CodeRules = []validation.Rule{
		validation.Required,
		validation.Length(6, 6),
		is.Digit,
	}
)
