package usecase

import (
	"context"
	"fmt"

	"github.com/nursultanov/budgetbook/internal/domain"
	"github.com/nursultanov/budgetbook/internal/repository"
)

type ExpenseUsecase struct {
	repo repository.ExpenseRepository
}

func NewExpenseUsecase(repo repository.ExpenseRepository) *ExpenseUsecase {
	return &ExpenseUsecase{repo: repo}
}

type CreateExpenseInput struct {
	BudgetID string
	Name     string
	Amount   float64
}

func (u *ExpenseUsecase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	expense, err := u.repo.Create(ctx, &domain.Expense{
		Name:     input.Name,
		Amount:   input.Amount,
		BudgetID: input.BudgetID,
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

func (u *ExpenseUsecase) UpdateExpense(ctx context.Context, expense *domain.Expense, name string, amount float64) (*domain.Expense, error) {
	expense.Name = name
	expense.Amount = amount
	if err := u.repo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

func (u *ExpenseUsecase) DeleteExpense(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
