package auth

import (
	"errors"
	"fmt"

	"github.com/nursultanov/budgetbook/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is a one-way salted hash with constant-time comparison.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Compare returns domain.ErrWrongPassword on a mismatch. Any other failure
// (e.g. a malformed stored hash) is returned as-is.
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrWrongPassword
		}
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
