package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/auth"
	"github.com/nursultanov/budgetbook/internal/repository"
	"github.com/nursultanov/budgetbook/internal/transport/http/handler"
	"github.com/nursultanov/budgetbook/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

// NewRouter wires the guard chain in its fixed order: Auth resolves the
// caller, BudgetAccess resolves and scopes the budget, ExpenseAccess resolves
// the expense and checks it belongs to that budget. Handlers behind a guard
// can assume their resources exist and are the caller's.
func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	budgetHandler *handler.BudgetHandler,
	expenseHandler *handler.ExpenseHandler,
	codec *auth.TokenCodec,
	users repository.UserRepository,
	budgets repository.BudgetRepository,
	expenses repository.ExpenseRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(codec, users, logger)

	authGroup := r.Group("/auth")
	authGroup.POST("/create-account", authHandler.CreateAccount)
	authGroup.POST("/confirm-account", authHandler.ConfirmAccount)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/forgot-password", authHandler.ForgotPassword)
	authGroup.POST("/reset-password", authHandler.ResetPassword)
	authGroup.GET("/user", authMW, authHandler.CurrentUser)

	budgetGroup := r.Group("/budgets", authMW)
	budgetGroup.GET("", budgetHandler.List)
	budgetGroup.POST("", budgetHandler.Create)

	oneBudget := budgetGroup.Group("/:budgetId", middleware.BudgetAccess(budgets, logger))
	oneBudget.GET("", budgetHandler.GetByID)
	oneBudget.PUT("", budgetHandler.Update)
	oneBudget.DELETE("", budgetHandler.Delete)

	expenseGroup := oneBudget.Group("/expenses")
	expenseGroup.POST("", expenseHandler.Create)

	oneExpense := expenseGroup.Group("/:expenseId", middleware.ExpenseAccess(expenses, logger))
	oneExpense.GET("", expenseHandler.GetByID)
	oneExpense.PUT("", expenseHandler.Update)
	oneExpense.DELETE("", expenseHandler.Delete)

	return r
}
