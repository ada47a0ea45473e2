package randcode

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	t.Parallel()

	for range 1000 {
		code, err := GenerateNumericCode(100000, 999999)
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.ParseInt(code, 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(100000))
		assert.LessOrEqual(t, n, int64(999999))
	}
}

func TestGenerateNumericCode_Bounds(t *testing.T) {
	t.Parallel()

	// Degenerate range must always return the single value.
	code, err := GenerateNumericCode(7, 7)
	require.NoError(t, err)
	assert.Equal(t, "7", code)
}
