package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/domain"
)

const errExpenseNotFound = "expense not found"

type expenseFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Expense, error)
}

// ExpenseAccess runs after BudgetAccess. It loads the expense named by the
// :expenseId path parameter and checks it belongs to the budget already
// resolved for this request. A mismatch gets the exact same 404 as a missing
// expense: an expense under someone else's budget must look nonexistent.
func ExpenseAccess(expenses expenseFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		budget := CurrentBudget(c)
		expenseID := c.Param("expenseId")

		expense, err := expenses.FindByID(c.Request.Context(), expenseID)
		if err != nil {
			if errors.Is(err, domain.ErrExpenseNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errExpenseNotFound})
				return
			}
			logger.ErrorContext(c.Request.Context(), "load expense", "expense_id", expenseID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
			return
		}

		if expense.BudgetID != budget.ID {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errExpenseNotFound})
			return
		}

		c.Set(ctxExpenseKey, expense)
		c.Next()
	}
}
