package repository

import (
	"context"

	"github.com/nursultanov/budgetbook/internal/domain"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	// FindByID is deliberately not budget-scoped; the guard chain compares
	// the loaded expense's budget against the one resolved for the request.
	FindByID(ctx context.Context, id string) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
}
