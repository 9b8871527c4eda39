package randcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericCode returns a code of exactly length decimal digits with a
// non-zero leading digit, so the string width never shrinks. For length 6 the
// result is uniformly distributed over [100000, 999999].
func GenerateNumericCode(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("invalid code length: %d", length)
	}

	lower := big.NewInt(1)
	for range length - 1 {
		lower.Mul(lower, big.NewInt(10))
	}
	span := new(big.Int).Mul(lower, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}

	return n.Add(n, lower).String(), nil
}
