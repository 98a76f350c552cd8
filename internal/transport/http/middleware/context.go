package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/domain"
)

// Keys under which the guard chain stores resolved resources in the gin
// context. Each guard attaches exactly one value; handlers read them through
// the typed accessors below instead of poking at c.Get.
const (
	ctxUserKey    = "currentUser"
	ctxBudgetKey  = "currentBudget"
	ctxExpenseKey = "currentExpense"
)

// CurrentUser returns the identity resolved by Auth. Panics if called on a
// route that is not behind Auth; that is a routing bug, not a runtime case.
func CurrentUser(c *gin.Context) *domain.User {
	return c.MustGet(ctxUserKey).(*domain.User)
}

// CurrentBudget returns the budget resolved by BudgetAccess.
func CurrentBudget(c *gin.Context) *domain.Budget {
	return c.MustGet(ctxBudgetKey).(*domain.Budget)
}

// CurrentExpense returns the expense resolved by ExpenseAccess.
func CurrentExpense(c *gin.Context) *domain.Expense {
	return c.MustGet(ctxExpenseKey).(*domain.Expense)
}
