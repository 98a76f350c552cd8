package domain

import (
	"errors"
	"time"
)

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrExpenseNotFound = errors.New("expense not found")
)

type Budget struct {
	ID        string
	Name      string
	Amount    float64
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expense always belongs to exactly one budget. Handlers must only act on an
// expense after the request's budget has been resolved and the two match.
type Expense struct {
	ID        string
	Name      string
	Amount    float64
	BudgetID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
