package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/auth"
	"github.com/nursultanov/budgetbook/internal/domain"
	"github.com/nursultanov/budgetbook/internal/transport/http/middleware"
)

type fakeBudgetFinder struct {
	budgets map[string]*domain.Budget
}

func (f *fakeBudgetFinder) FindByID(_ context.Context, id, ownerID string) (*domain.Budget, error) {
	b, ok := f.budgets[id]
	if !ok || b.OwnerID != ownerID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

type fakeExpenseFinder struct {
	expenses map[string]*domain.Expense
}

func (f *fakeExpenseFinder) FindByID(_ context.Context, id string) (*domain.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

// newGuardedEngine wires the full chain the way the router does:
// Auth → BudgetAccess → ExpenseAccess.
func newGuardedEngine(budgets *fakeBudgetFinder, expenses *fakeExpenseFinder) *gin.Engine {
	codec := auth.NewTokenCodec([]byte(testKey))
	logger := testLogger()

	r := gin.New()
	grp := r.Group("/budgets/:budgetId",
		middleware.Auth(codec, knownUser("user-1"), logger),
		middleware.BudgetAccess(budgets, logger),
	)
	grp.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "%s", middleware.CurrentBudget(c).ID)
	})

	exp := grp.Group("/expenses/:expenseId", middleware.ExpenseAccess(expenses, logger))
	exp.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "%s", middleware.CurrentExpense(c).ID)
	})
	return r
}

func guardedGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "user-1"))
	r.ServeHTTP(w, req)
	return w
}

func testFixtures() (*fakeBudgetFinder, *fakeExpenseFinder) {
	budgets := &fakeBudgetFinder{budgets: map[string]*domain.Budget{
		"budget-1": {ID: "budget-1", Name: "groceries", OwnerID: "user-1"},
		"budget-2": {ID: "budget-2", Name: "travel", OwnerID: "user-1"},
		"budget-x": {ID: "budget-x", Name: "theirs", OwnerID: "user-2"},
	}}
	expenses := &fakeExpenseFinder{expenses: map[string]*domain.Expense{
		"expense-1": {ID: "expense-1", Name: "milk", BudgetID: "budget-1"},
		"expense-2": {ID: "expense-2", Name: "flight", BudgetID: "budget-2"},
	}}
	return budgets, expenses
}

func TestBudgetAccess_MissingBudget_Returns404(t *testing.T) {
	r := newGuardedEngine(testFixtures())

	w := guardedGet(t, r, "/budgets/nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if want := `{"error":"budget not found"}`; w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestBudgetAccess_SomeoneElsesBudget_SameNotFound(t *testing.T) {
	r := newGuardedEngine(testFixtures())

	missing := guardedGet(t, r, "/budgets/nope")
	foreign := guardedGet(t, r, "/budgets/budget-x")

	if foreign.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", foreign.Code)
	}
	if foreign.Body.String() != missing.Body.String() {
		t.Errorf("foreign-budget body %q differs from missing-budget body %q",
			foreign.Body.String(), missing.Body.String())
	}
}

func TestBudgetAccess_OwnBudget_Resolves(t *testing.T) {
	r := newGuardedEngine(testFixtures())

	w := guardedGet(t, r, "/budgets/budget-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "budget-1" {
		t.Errorf("body = %q, want %q", w.Body.String(), "budget-1")
	}
}

func TestExpenseAccess_MissingExpense_Returns404(t *testing.T) {
	r := newGuardedEngine(testFixtures())

	w := guardedGet(t, r, "/budgets/budget-1/expenses/nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if want := `{"error":"expense not found"}`; w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestExpenseAccess_WrongBudget_IndistinguishableFromMissing(t *testing.T) {
	r := newGuardedEngine(testFixtures())

	// expense-2 exists but belongs to budget-2.
	mismatch := guardedGet(t, r, "/budgets/budget-1/expenses/expense-2")
	missing := guardedGet(t, r, "/budgets/budget-1/expenses/nope")

	if mismatch.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", mismatch.Code)
	}
	if mismatch.Body.String() != missing.Body.String() {
		t.Errorf("mismatch body %q differs from missing body %q",
			mismatch.Body.String(), missing.Body.String())
	}
}

func TestExpenseAccess_MatchingBudget_Resolves(t *testing.T) {
	r := newGuardedEngine(testFixtures())

	w := guardedGet(t, r, "/budgets/budget-1/expenses/expense-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "expense-1" {
		t.Errorf("body = %q, want %q", w.Body.String(), "expense-1")
	}
}

func TestGuardChain_BudgetRejected_ExpenseGuardNeverRuns(t *testing.T) {
	budgets, expenses := testFixtures()
	r := newGuardedEngine(budgets, expenses)

	w := guardedGet(t, r, "/budgets/nope/expenses/expense-1")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if want := `{"error":"budget not found"}`; w.Body.String() != want {
		t.Errorf("body = %q, want %q (budget guard must reject first)", w.Body.String(), want)
	}
}
