package usecase

import (
	"context"
	"fmt"

	"github.com/nursultanov/budgetbook/internal/domain"
	"github.com/nursultanov/budgetbook/internal/repository"
)

type BudgetUsecase struct {
	repo repository.BudgetRepository
}

func NewBudgetUsecase(repo repository.BudgetRepository) *BudgetUsecase {
	return &BudgetUsecase{repo: repo}
}

type CreateBudgetInput struct {
	OwnerID string
	Name    string
	Amount  float64
}

func (u *BudgetUsecase) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.Budget, error) {
	budget, err := u.repo.Create(ctx, &domain.Budget{
		Name:    input.Name,
		Amount:  input.Amount,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return budget, nil
}

func (u *BudgetUsecase) ListBudgets(ctx context.Context, ownerID string) ([]*domain.Budget, error) {
	budgets, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

func (u *BudgetUsecase) UpdateBudget(ctx context.Context, budget *domain.Budget, name string, amount float64) (*domain.Budget, error) {
	budget.Name = name
	budget.Amount = amount
	if err := u.repo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return budget, nil
}

func (u *BudgetUsecase) DeleteBudget(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
