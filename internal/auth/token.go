package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nursultanov/budgetbook/internal/domain"
)

const sessionTTL = 30 * 24 * time.Hour

// TokenCodec signs and verifies the HS256 session tokens carried in the
// Authorization header. Claims are {sub, iat, exp}; exp is 30 days out.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: sessionTTL}
}

func (c *TokenCodec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject (user ID).
// Every verification failure collapses into domain.ErrTokenInvalid; the caller
// must treat it as a client error, never a server one.
func (c *TokenCodec) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return subject, nil
}
