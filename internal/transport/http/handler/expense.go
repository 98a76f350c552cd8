package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/domain"
	"github.com/nursultanov/budgetbook/internal/transport/http/middleware"
	"github.com/nursultanov/budgetbook/internal/usecase"
)

type ExpenseHandler struct {
	uc     *usecase.ExpenseUsecase
	logger *slog.Logger
}

func NewExpenseHandler(uc *usecase.ExpenseUsecase, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, logger: logger.With("component", "expense_handler")}
}

type expenseRequest struct {
	Name   string  `json:"name"   binding:"required,max=256"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type expenseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	BudgetID  string    `json:"budget_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toExpenseResponse(e *domain.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		BudgetID:  e.BudgetID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// POST /budgets/:budgetId/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.uc.CreateExpense(c.Request.Context(), usecase.CreateExpenseInput{
		BudgetID: middleware.CurrentBudget(c).ID,
		Name:     req.Name,
		Amount:   req.Amount,
	})
	if err != nil {
		h.logger.Error("create expense", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GET /budgets/:budgetId/expenses/:expenseId, resolved by the guard chain.
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	c.JSON(http.StatusOK, toExpenseResponse(middleware.CurrentExpense(c)))
}

// PUT /budgets/:budgetId/expenses/:expenseId
func (h *ExpenseHandler) Update(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.uc.UpdateExpense(c.Request.Context(), middleware.CurrentExpense(c), req.Name, req.Amount)
	if err != nil {
		h.logger.Error("update expense", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DELETE /budgets/:budgetId/expenses/:expenseId
func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteExpense(c.Request.Context(), middleware.CurrentExpense(c).ID); err != nil {
		h.logger.Error("delete expense", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}
