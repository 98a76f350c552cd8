package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/domain"
	"github.com/nursultanov/budgetbook/internal/transport/http/middleware"
	"github.com/nursultanov/budgetbook/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Confirm(ctx context.Context, code string) error
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, code, password string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
	echoCode    bool
}

// NewAuthHandler builds the /auth handlers. echoCode controls whether the
// create-account response repeats the confirmation code, a testing
// convenience that must stay off in production.
func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger, echoCode bool) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
		echoCode:    echoCode,
	}
}

type createAccountRequest struct {
	Name     string `json:"name"     binding:"required,max=128"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/create-account
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
			return
		}
		h.logger.Error("create account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	emailInfo := gin.H{"to": user.Email}
	if h.echoCode && user.ConfirmationToken != nil {
		emailInfo["token"] = *user.ConfirmationToken
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "account created, check your email to confirm it",
		"email":   emailInfo,
	})
}

type confirmAccountRequest struct {
	Token string `json:"token" binding:"required"`
}

// POST /auth/confirm-account
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	var req confirmAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Confirm(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, domain.ErrInvalidConfirmCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidConfirmCode})
			return
		}
		h.logger.Error("confirm account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account confirmed"})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errUserNotFound})
		case errors.Is(err, domain.ErrNotActivated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errNotActivated})
		case errors.Is(err, domain.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errWrongPassword})
		default:
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login success", "token": token})
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GET /auth/user — the identity was already resolved by the Auth guard.
// The password hash never leaves the handler layer.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.Error("forgot password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "check your email for the reset code"})
}

type resetPasswordRequest struct {
	Token    string `json:"token"    binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidConfirmCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidConfirmCode})
			return
		}
		h.logger.Error("reset password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
