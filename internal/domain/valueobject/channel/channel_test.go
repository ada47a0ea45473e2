package channel

import (
	"testing"

	"github.com/ARUMANDESU/validation"
	"github.com/stretchr/testify/assert"
)

func TestChannel_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Email.Validate())
	assert.NoError(t, SMS.Validate())
	assert.Error(t, Channel("").Validate())
	assert.Error(t, Channel("carrier-pigeon").Validate())
	// value comparison is exact, no case folding
	assert.Error(t, Channel("Email").Validate())
}

func TestRules_StringValues(t *testing.T) {
	t.Parallel()

	// request bodies carry the channel as a plain string, the rules must
	// accept it without an intermediate conversion
	assert.NoError(t, validation.Validate("email", Rules...))
	assert.NoError(t, validation.Validate("sms", Rules...))

	assert.Error(t, validation.Validate("", Rules...))
	assert.Error(t, validation.Validate("fax", Rules...))
}

func TestRules_TypedValues(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validation.Validate(Email, Rules...))
	assert.NoError(t, validation.Validate(SMS, Rules...))
	assert.Error(t, validation.Validate(Channel("fax"), Rules...))
}

func TestRules_UnsupportedType(t *testing.T) {
	t.Parallel()

	err := validation.Validate(42, Rules...)
	assert.EqualError(t, err, ErrUnknownChannel.Error())
}
