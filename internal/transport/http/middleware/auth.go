package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/auth"
	"github.com/nursultanov/budgetbook/internal/domain"
)

const (
	errAuthRequired   = "authentication required"
	errTokenMissing   = "token missing"
	errTokenInvalid   = "invalid token"
	errUserNotFound   = "user not found"
	errInternalServer = "Internal server error"
)

// userFinder is the subset of the user repository Auth needs.
// Defined here (point of use) so tests can inject a fake.
type userFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth validates the Bearer token and resolves the caller's identity.
//
// A cryptographically invalid or expired token is a client error (401), never
// a 500. A valid token whose subject no longer exists is 404: the account was
// deleted after the token was issued.
func Auth(codec *auth.TokenCodec, users userFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthRequired})
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenMissing})
			return
		}

		subject, err := codec.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}

		user, err := users.FindByID(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
				return
			}
			logger.ErrorContext(c.Request.Context(), "resolve token subject", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}
