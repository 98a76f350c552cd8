package repository

import (
	"context"
	"time"

	"github.com/nursultanov/budgetbook/internal/domain"
)

// Usecases depend on interfaces, not concrete implementations, so the DB can
// be swapped without touching them and tests can inject fakes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByConfirmationToken(ctx context.Context, token string) (*domain.User, error)

	// MarkConfirmed sets confirmed=true and clears the confirmation token.
	MarkConfirmed(ctx context.Context, id string) error
	// SetConfirmationToken stores a fresh code (password recovery reuses it).
	SetConfirmationToken(ctx context.Context, id, token string) error
	// UpdatePassword replaces the hash and clears any pending code.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// DeleteStaleUnconfirmed removes unconfirmed accounts created before
	// cutoff and returns how many were deleted.
	DeleteStaleUnconfirmed(ctx context.Context, cutoff time.Time) (int, error)
}
