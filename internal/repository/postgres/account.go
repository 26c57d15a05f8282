package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/repository"
)

type accountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) repository.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, account_number, title, description, status, rent_expires_at,
	price_hours_3_cents, price_hours_6_cents, price_hours_12_cents, price_hours_24_cents,
	price_night_cents, price_hourly_cents,
	full_access, mail_included, night_discount, ranked_ready, created_on, updated_on`

func scanAccount(row interface{ Scan(...any) error }) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.AccountNumber, &a.Title, &a.Description, &a.Status, &a.RentExpiresAt,
		&a.Price.Hours3Cents, &a.Price.Hours6Cents, &a.Price.Hours12Cents, &a.Price.Hours24Cents,
		&a.Price.NightCents, &a.Price.HourlyCents,
		&a.Features.FullAccess, &a.Features.MailIncluded, &a.Features.NightDiscount, &a.Features.RankedReady,
		&a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO accounts (account_number, title, description, status,
	            price_hours_3_cents, price_hours_6_cents, price_hours_12_cents, price_hours_24_cents,
	            price_night_cents, price_hourly_cents,
	            full_access, mail_included, night_discount, ranked_ready)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id, created_on, updated_on`
	if account.Status == "" {
		account.Status = domain.AccountStatusFree
	}
	err := r.db.QueryRowContext(ctx, query,
		account.AccountNumber, account.Title, account.Description, account.Status,
		account.Price.Hours3Cents, account.Price.Hours6Cents, account.Price.Hours12Cents, account.Price.Hours24Cents,
		account.Price.NightCents, account.Price.HourlyCents,
		account.Features.FullAccess, account.Features.MailIncluded, account.Features.NightDiscount, account.Features.RankedReady).
		Scan(&account.ID, &account.CreatedOn, &account.UpdatedOn)
	if isUniqueViolation(err, "accounts_account_number_key") {
		return domain.Conflict("account number already in use")
	}
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	return a, err
}

func (r *accountRepository) List(ctx context.Context, filter domain.AccountFilter, page, pageSize int) ([]domain.Account, int64, error) {
	where := `WHERE status != 'DELETED'`
	args := []any{}
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return "$" + strconv.Itoa(n)
	}
	if filter.Status != nil {
		where += ` AND status = ` + arg(*filter.Status)
	}
	for col, flag := range map[string]*bool{
		"full_access":    filter.FullAccess,
		"mail_included":  filter.MailIncluded,
		"night_discount": filter.NightDiscount,
		"ranked_ready":   filter.RankedReady,
	} {
		if flag != nil {
			where += fmt.Sprintf(` AND %s = %s`, col, arg(*flag))
		}
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM accounts `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts ` + where +
		` ORDER BY id LIMIT ` + arg(pageSize) + ` OFFSET ` + arg((page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, count, rows.Err()
}

func (r *accountRepository) MarkRented(ctx context.Context, id int64, expiresAt time.Time) error {
	query := `UPDATE accounts SET status = 'RENTED', rent_expires_at = $2, updated_on = NOW()
	          WHERE id = $1 AND status = 'FREE'`
	return r.conditional(ctx, query, domain.ErrAccountUnavailable, id, expiresAt)
}

func (r *accountRepository) Release(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET status = 'FREE', rent_expires_at = NULL, updated_on = NOW()
	          WHERE id = $1 AND status != 'DELETED'`
	return r.conditional(ctx, query, domain.ErrAccountNotFound, id)
}

func (r *accountRepository) ReleaseIfRented(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET status = 'FREE', rent_expires_at = NULL, updated_on = NOW()
	          WHERE id = $1 AND status = 'RENTED'`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *accountRepository) ReleaseIfExpired(ctx context.Context, id int64, now time.Time) error {
	// Zero affected rows is fine: the account was already freed, re-rented
	// with a fresh expiry, or withdrawn from rotation.
	query := `UPDATE accounts SET status = 'FREE', rent_expires_at = NULL, updated_on = NOW()
	          WHERE id = $1 AND status = 'RENTED' AND rent_expires_at < $2`
	_, err := r.db.ExecContext(ctx, query, id, now)
	return err
}

func (r *accountRepository) SetUnavailable(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET status = 'UNAVAILABLE', rent_expires_at = NULL, updated_on = NOW()
	          WHERE id = $1 AND status != 'DELETED'`
	return r.conditional(ctx, query, domain.ErrAccountNotFound, id)
}

func (r *accountRepository) SetRentExpiry(ctx context.Context, id int64, expiresAt time.Time) error {
	query := `UPDATE accounts SET rent_expires_at = $2, updated_on = NOW()
	          WHERE id = $1 AND status = 'RENTED'`
	return r.conditional(ctx, query, domain.ErrAccountUnavailable, id, expiresAt)
}

func (r *accountRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE accounts
	          SET status = 'DELETED', rent_expires_at = NULL,
	              account_number = account_number || '-del-' || id,
	              updated_on = NOW()
	          WHERE id = $1 AND status != 'DELETED'`
	return r.conditional(ctx, query, domain.ErrAccountNotFound, id)
}

func (r *accountRepository) ReleaseExpired(ctx context.Context, now time.Time) ([]int64, error) {
	query := `UPDATE accounts SET status = 'FREE', rent_expires_at = NULL, updated_on = NOW()
	          WHERE status = 'RENTED' AND rent_expires_at < $1
	          RETURNING id`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *accountRepository) conditional(ctx context.Context, query string, miss error, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return miss
	}
	return nil
}
