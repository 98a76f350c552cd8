package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nursultanov/budgetbook/internal/domain"
)

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	query := `
		INSERT INTO expenses (id, name, amount, budget_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, amount, budget_id, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), expense.Name, expense.Amount, expense.BudgetID)
	created, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return created, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `
		SELECT id, name, amount, budget_id, created_at, updated_at
		FROM expenses
		WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanExpense(row)
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses SET name = $2, amount = $3, updated_at = now() WHERE id = $1`,
		expense.ID, expense.Name, expense.Amount,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.Name, &e.Amount, &e.BudgetID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}
