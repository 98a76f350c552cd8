package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/domain"
)

const errBudgetNotFound = "budget not found"

type budgetFinder interface {
	FindByID(ctx context.Context, id, ownerID string) (*domain.Budget, error)
}

// BudgetAccess runs after Auth. It loads the budget named by the :budgetId
// path parameter, scoped to the caller: a budget owned by another user gets
// the same 404 as a missing one, so existence is never leaked.
func BudgetAccess(budgets budgetFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		budgetID := c.Param("budgetId")

		budget, err := budgets.FindByID(c.Request.Context(), budgetID, user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrBudgetNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errBudgetNotFound})
				return
			}
			logger.ErrorContext(c.Request.Context(), "load budget", "budget_id", budgetID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
			return
		}

		c.Set(ctxBudgetKey, budget)
		c.Next()
	}
}
