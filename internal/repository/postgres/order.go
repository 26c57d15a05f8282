package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/repository"
)

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, account_id, amount_cents, status, rent_hours,
	starts_at, expires_at, payment_method, transaction_id,
	verification_platform, platform_username,
	can_review, has_review, can_send_mail, created_on, updated_on`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.AccountID, &o.AmountCents, &o.Status, &o.RentHours,
		&o.StartsAt, &o.ExpiresAt, &o.PaymentMethod, &o.TransactionID,
		&o.VerificationPlatform, &o.PlatformUsername,
		&o.CanReview, &o.HasReview, &o.CanSendMail, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `INSERT INTO orders (user_id, account_id, amount_cents, status, rent_hours,
	            payment_method, transaction_id, verification_platform, platform_username)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_on, updated_on`
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	order.CanSendMail = true
	err := r.db.QueryRowContext(ctx, query,
		order.UserID, order.AccountID, order.AmountCents, order.Status, order.RentHours,
		order.PaymentMethod, order.TransactionID, order.VerificationPlatform, order.PlatformUsername).
		Scan(&order.ID, &order.CreatedOn, &order.UpdatedOn)
	if isUniqueViolation(err, "one_pending_order_per_user") {
		return domain.ErrPendingOrderExists
	}
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	return o, err
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error) {
	where := `WHERE TRUE`
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
	if filter.UserID != nil {
		where += ` AND user_id = ` + arg(*filter.UserID)
	}
	if filter.AccountID != nil {
		where += ` AND account_id = ` + arg(*filter.AccountID)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders ` + where +
		` ORDER BY created_on DESC LIMIT ` + arg(pageSize) + ` OFFSET ` + arg((page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Order, int64, error) {
	return r.List(ctx, domain.OrderFilter{UserID: &userID}, page, pageSize)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) error {
	query := `UPDATE orders SET status = $3, updated_on = NOW() WHERE id = $1 AND status = $2`
	return r.conditional(ctx, query, id, from, to)
}

func (r *orderRepository) Activate(ctx context.Context, id int64, startsAt, expiresAt time.Time) error {
	query := `UPDATE orders SET status = 'ACTIVE', starts_at = $2, expires_at = $3, updated_on = NOW()
	          WHERE id = $1 AND status = 'VERIFIED'`
	return r.conditional(ctx, query, id, startsAt, expiresAt)
}

func (r *orderRepository) ExtendExpiry(ctx context.Context, id int64, extraHours int) (time.Time, error) {
	// The addition happens on the row itself, so two concurrent extensions
	// stack instead of the second overwriting the first.
	query := `UPDATE orders SET expires_at = expires_at + make_interval(hours => $2), updated_on = NOW()
	          WHERE id = $1 AND status = 'ACTIVE'
	          RETURNING expires_at`
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx, query, id, extraHours).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, domain.ErrInvalidTransition
	}
	return expiresAt, err
}

func (r *orderRepository) SetTransactionID(ctx context.Context, id, transactionID int64) error {
	query := `UPDATE orders SET transaction_id = $2, updated_on = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, transactionID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) SetReviewed(ctx context.Context, id int64) error {
	query := `UPDATE orders SET has_review = TRUE, can_review = FALSE, updated_on = NOW()
	          WHERE id = $1 AND can_review = TRUE`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.Conflict("order is not eligible for review")
	}
	return nil
}

func (r *orderRepository) CompleteExpired(ctx context.Context, now time.Time) ([]domain.Order, error) {
	query := `UPDATE orders
	          SET status = 'COMPLETED', expires_at = NULL, can_review = TRUE, updated_on = NOW()
	          WHERE status = 'ACTIVE' AND expires_at < $1
	          RETURNING ` + orderColumns
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ListExpiringSoon(ctx context.Context, now time.Time, window time.Duration) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
	          WHERE status = 'ACTIVE' AND can_send_mail = TRUE
	            AND expires_at >= $1 AND expires_at < $2`
	rows, err := r.db.QueryContext(ctx, query, now, now.Add(window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) DisableMailWarning(ctx context.Context, id int64) error {
	query := `UPDATE orders SET can_send_mail = FALSE, updated_on = NOW()
	          WHERE id = $1 AND can_send_mail = TRUE`
	return r.conditional(ctx, query, id)
}

func (r *orderRepository) conditional(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
