package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, name, password_hash, role, balance_cents)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_on, updated_on`
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	return r.db.QueryRowContext(ctx, query, user.Email, user.Name, user.PasswordHash, user.Role, user.BalanceCents).
		Scan(&user.ID, &user.CreatedOn, &user.UpdatedOn)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *userRepository) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT id, email, name, password_hash, role, balance_cents,
	                 verification_code, verification_expires_at, created_on, updated_on
	          FROM users ` + where
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.BalanceCents,
		&u.VerificationCode, &u.VerificationExpiresAt, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetBalance(ctx context.Context, id int64) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx, `SELECT balance_cents FROM users WHERE id = $1`, id).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrUserNotFound
	}
	return balance, err
}

func (r *userRepository) Debit(ctx context.Context, id int64, amountCents int64) error {
	query := `UPDATE users SET balance_cents = balance_cents - $2, updated_on = NOW()
	          WHERE id = $1 AND balance_cents >= $2`
	res, err := r.db.ExecContext(ctx, query, id, amountCents)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r *userRepository) Credit(ctx context.Context, id int64, amountCents int64) error {
	query := `UPDATE users SET balance_cents = balance_cents + $2, updated_on = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, amountCents)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetVerificationCode(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	query := `UPDATE users SET verification_code = $2, verification_expires_at = $3, updated_on = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, code, expiresAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ClearExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE users SET verification_code = NULL, verification_expires_at = NULL, updated_on = NOW()
	          WHERE verification_expires_at IS NOT NULL AND verification_expires_at < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
