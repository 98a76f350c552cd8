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

type BudgetRepository struct {
	pool *pgxpool.Pool
}

func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	query := `
		INSERT INTO budgets (id, name, amount, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, amount, owner_id, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), budget.Name, budget.Amount, budget.OwnerID)
	created, err := scanBudget(row)
	if err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}
	return created, nil
}

func (r *BudgetRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Budget, error) {
	query := `
		SELECT id, name, amount, owner_id, created_at, updated_at
		FROM budgets
		WHERE id = $1 AND owner_id = $2`

	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanBudget(row)
}

func (r *BudgetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error) {
	query := `
		SELECT id, name, amount, owner_id, created_at, updated_at
		FROM budgets
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []*domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE budgets SET name = $2, amount = $3, updated_at = now() WHERE id = $1`,
		budget.ID, budget.Name, budget.Amount,
	)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// Delete cascades to the budget's expenses via the FK constraint.
func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(&b.ID, &b.Name, &b.Amount, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("scan budget: %w", err)
	}
	return &b, nil
}
