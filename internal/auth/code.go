package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// GenerateConfirmationCode returns a 6-digit numeric code, uniform in
// [100000, 999999]. Codes are not uniqueness-checked across pending
// registrations; each one is single-use and short-lived, so the collision
// window between two pending accounts is accepted.
func GenerateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
