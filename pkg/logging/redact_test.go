package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no at sign", "not-an-email", "not-an-email"},
		{"at at start", "@example.com", "@example.com"},
		{"at at end", "user@", "user@"},
		{"short local part", "ab@example.com", "ab@example.com"},
		{"normal", "johndoe@example.com", "jo****@example.com"},
		{"trims whitespace", "  johndoe@example.com  ", "jo****@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactEmail(tt.input))
		})
	}
}

func TestRedactPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"too short", "12345", "12345"},
		{"international", "+15551234567", "+15*******67"},
		{"no plus prefix", "15551234567", "15*******67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactPhone(tt.input))
		})
	}
}
