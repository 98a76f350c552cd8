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

type BudgetHandler struct {
	uc     *usecase.BudgetUsecase
	logger *slog.Logger
}

func NewBudgetHandler(uc *usecase.BudgetUsecase, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{uc: uc, logger: logger.With("component", "budget_handler")}
}

type budgetRequest struct {
	Name   string  `json:"name"   binding:"required,max=256"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type budgetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBudgetResponse(b *domain.Budget) budgetResponse {
	return budgetResponse{
		ID:        b.ID,
		Name:      b.Name,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// POST /budgets
func (h *BudgetHandler) Create(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.uc.CreateBudget(c.Request.Context(), usecase.CreateBudgetInput{
		OwnerID: middleware.CurrentUser(c).ID,
		Name:    req.Name,
		Amount:  req.Amount,
	})
	if err != nil {
		h.logger.Error("create budget", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GET /budgets
func (h *BudgetHandler) List(c *gin.Context) {
	budgets, err := h.uc.ListBudgets(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.logger.Error("list budgets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		items[i] = toBudgetResponse(b)
	}
	c.JSON(http.StatusOK, gin.H{"budgets": items})
}

// GET /budgets/:budgetId. The guard already resolved the budget.
func (h *BudgetHandler) GetByID(c *gin.Context) {
	c.JSON(http.StatusOK, toBudgetResponse(middleware.CurrentBudget(c)))
}

// PUT /budgets/:budgetId
func (h *BudgetHandler) Update(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.uc.UpdateBudget(c.Request.Context(), middleware.CurrentBudget(c), req.Name, req.Amount)
	if err != nil {
		h.logger.Error("update budget", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DELETE /budgets/:budgetId
func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteBudget(c.Request.Context(), middleware.CurrentBudget(c).ID); err != nil {
		h.logger.Error("delete budget", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "budget deleted"})
}
