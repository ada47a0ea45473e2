package randcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateNumericCode draws a code uniformly from [min, max] inclusive and
// returns its decimal representation. For the 6-digit verification codes used
// here the bounds are [100000, 999999], so the result never needs padding.
func GenerateNumericCode(min, max int64) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(min+n.Int64(), 10), nil
}
