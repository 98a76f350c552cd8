package repository

import (
	"context"

	"github.com/nursultanov/budgetbook/internal/domain"
)

type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) (*domain.Budget, error)
	// FindByID is owner-scoped: a budget owned by someone else is reported
	// as not found, indistinguishable from a missing one.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Budget, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error)
	Update(ctx context.Context, budget *domain.Budget) error
	Delete(ctx context.Context, id string) error
}
