package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"nil error", nil, CodeNotFound, false},
		{"matching code", NewNotFound(), CodeNotFound, true},
		{"different code", NewAlreadyVerified(), CodeNotFound, false},
		{"wrapped matching code", Wrap(NewCodeExpired(), "cmd.Verify"), CodeExpired, true},
		{"deeply wrapped", fmt.Errorf("outer: %w", Wrap(NewResendThrottled(42), "cmd.Login")), CodeResendThrottled, true},
		{"plain error", errors.New("boom"), CodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCode(tt.err, tt.code))
		})
	}
}

func TestI18nError_HTTPStatusCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusConflict, NewAlreadyVerified().HTTPStatusCode())
	assert.Equal(t, http.StatusGone, NewCodeExpired().HTTPStatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, NewInvalidVerificationCode().HTTPStatusCode())
	assert.Equal(t, http.StatusTooManyRequests, NewResendThrottled(10).HTTPStatusCode())
	assert.Equal(t, http.StatusBadGateway, NewDeliveryFailed().HTTPStatusCode())
	assert.Equal(t, http.StatusNotFound, NewNoCodeIssued().HTTPStatusCode())
}

func TestI18nError_WithCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("smtp: connection refused")
	err := NewDeliveryFailed().WithCause(cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
