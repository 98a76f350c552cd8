package domain

import (
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("a user with that email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotActivated       = errors.New("account not activated")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidConfirmCode = errors.New("invalid confirmation code")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

// User is an account in one of two states: unconfirmed (holds a pending
// 6-digit confirmation code) or confirmed (code cleared, login allowed).
type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	ConfirmationToken *string
	Confirmed         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
