package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nursultanov/budgetbook/internal/domain"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, confirmation_token, confirmed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, password_hash, confirmation_token, confirmed, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), user.Name, user.Email, user.PasswordHash,
		user.ConfirmationToken, user.Confirmed,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) FindByConfirmationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE confirmation_token = $1`, token)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, confirmation_token, confirmed, created_at, updated_at
		FROM users ` + where

	row := r.pool.QueryRow(ctx, query, arg)
	return scanUser(row)
}

func (r *UserRepository) MarkConfirmed(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET confirmed = TRUE, confirmation_token = NULL, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark confirmed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetConfirmationToken(ctx context.Context, id, token string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET confirmation_token = $2, updated_at = now() WHERE id = $1`,
		id, token,
	)
	if err != nil {
		return fmt.Errorf("set confirmation token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, confirmation_token = NULL, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteStaleUnconfirmed(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM users WHERE confirmed = FALSE AND created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale unconfirmed users: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.ConfirmationToken, &u.Confirmed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
