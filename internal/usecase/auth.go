package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nursultanov/budgetbook/internal/auth"
	"github.com/nursultanov/budgetbook/internal/domain"
	"github.com/nursultanov/budgetbook/internal/email"
	"github.com/nursultanov/budgetbook/internal/metrics"
	"github.com/nursultanov/budgetbook/internal/repository"
)

type AuthUsecase struct {
	users        repository.UserRepository
	hasher       auth.PasswordHasher
	codec        *auth.TokenCodec
	email        email.Sender
	logger       *slog.Logger
	frontendBase string
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher auth.PasswordHasher,
	codec *auth.TokenCodec,
	emailSender email.Sender,
	logger *slog.Logger,
	frontendBase string,
) *AuthUsecase {
	return &AuthUsecase{
		users:        users,
		hasher:       hasher,
		codec:        codec,
		email:        emailSender,
		logger:       logger.With("component", "auth_usecase"),
		frontendBase: frontendBase,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an unconfirmed account with a pending 6-digit confirmation
// code and emails the code. A failed email send is logged and absorbed; the
// account is created either way.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	existing, err := u.users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := auth.GenerateConfirmationCode()
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:              input.Name,
		Email:             input.Email,
		PasswordHash:      hash,
		ConfirmationToken: &code,
		Confirmed:         false,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.RegistrationsTotal.Inc()

	u.sendCode(ctx, "confirmation", user.Email,
		"Confirm your account",
		fmt.Sprintf(
			`<p>Hi %s, your confirmation code is <b>%s</b>.</p><p>Enter it at <a href="%s/auth/confirm-account">%s/auth/confirm-account</a>.</p>`,
			user.Name, code, u.frontendBase, u.frontendBase,
		))

	return user, nil
}

// Confirm promotes the account whose pending code matches. The code is
// cleared on success, so a second call with the same code fails.
func (u *AuthUsecase) Confirm(ctx context.Context, code string) error {
	user, err := u.users.FindByConfirmationToken(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.ConfirmationsTotal.WithLabelValues("invalid_code").Inc()
			return domain.ErrInvalidConfirmCode
		}
		return fmt.Errorf("look up confirmation code: %w", err)
	}

	if err := u.users.MarkConfirmed(ctx, user.ID); err != nil {
		return fmt.Errorf("mark confirmed: %w", err)
	}
	metrics.ConfirmationsTotal.WithLabelValues("success").Inc()
	return nil
}

// Login verifies credentials in a fixed order (existence, then activation,
// then password) and issues a session token. The order is observable: an
// unconfirmed account with a wrong password reports "not activated".
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("user_not_found").Inc()
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !user.Confirmed {
		metrics.LoginsTotal.WithLabelValues("not_activated").Inc()
		return "", domain.ErrNotActivated
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrWrongPassword) {
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
			return "", domain.ErrWrongPassword
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	token, err := u.codec.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// ForgotPassword issues a fresh 6-digit code to a known account and emails
// it. The code shares storage with the confirmation code, so an in-flight
// account confirmation code is replaced.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("look up user: %w", err)
	}

	code, err := auth.GenerateConfirmationCode()
	if err != nil {
		return err
	}
	if err := u.users.SetConfirmationToken(ctx, user.ID, code); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	u.sendCode(ctx, "password_reset", user.Email,
		"Reset your password",
		fmt.Sprintf(
			`<p>Hi %s, your password reset code is <b>%s</b>.</p><p>Enter it at <a href="%s/auth/reset-password">%s/auth/reset-password</a>.</p>`,
			user.Name, code, u.frontendBase, u.frontendBase,
		))

	return nil
}

// ResetPassword consumes a pending code and replaces the password hash.
func (u *AuthUsecase) ResetPassword(ctx context.Context, code, password string) error {
	user, err := u.users.FindByConfirmationToken(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidConfirmCode
		}
		return fmt.Errorf("look up reset code: %w", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (u *AuthUsecase) sendCode(ctx context.Context, kind, to, subject, body string) {
	if err := u.email.Send(ctx, to, subject, body); err != nil {
		metrics.EmailsTotal.WithLabelValues(kind, "error").Inc()
		u.logger.ErrorContext(ctx, "send email", "kind", kind, "to", to, "error", err)
		return
	}
	metrics.EmailsTotal.WithLabelValues(kind, "sent").Inc()
}
