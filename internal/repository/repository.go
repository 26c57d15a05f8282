package repository

import (
	"context"
	"time"

	"gamerent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetBalance(ctx context.Context, id int64) (int64, error)
	// Debit subtracts amount from the user's balance. The guard
	// balance >= amount runs in SQL; zero affected rows means
	// insufficient funds.
	Debit(ctx context.Context, id int64, amountCents int64) error
	Credit(ctx context.Context, id int64, amountCents int64) error
	SetVerificationCode(ctx context.Context, id int64, code string, expiresAt time.Time) error
	// ClearExpiredVerificationCodes nulls codes past their expiry and
	// returns how many rows changed.
	ClearExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error)
}

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context, filter domain.AccountFilter, page, pageSize int) ([]domain.Account, int64, error)
	// MarkRented flips FREE -> RENTED and sets the expiry. Zero affected
	// rows means the account was not free.
	MarkRented(ctx context.Context, id int64, expiresAt time.Time) error
	// Release flips the account back to FREE and clears the expiry.
	Release(ctx context.Context, id int64) error
	// ReleaseIfRented frees the account only when it is currently RENTED.
	// Any other status is left alone and reported as success.
	ReleaseIfRented(ctx context.Context, id int64) error
	// ReleaseIfExpired frees the account only when it is RENTED past its
	// expiry. A re-rented or withdrawn account is left alone.
	ReleaseIfExpired(ctx context.Context, id int64, now time.Time) error
	SetUnavailable(ctx context.Context, id int64) error
	SetRentExpiry(ctx context.Context, id int64, expiresAt time.Time) error
	// SoftDelete marks the account DELETED and mangles the display number
	// so the uniqueness slot is freed. Rows are never removed.
	SoftDelete(ctx context.Context, id int64) error
	// ReleaseExpired frees every rented account whose expiry has passed
	// and returns the freed account IDs.
	ReleaseExpired(ctx context.Context, now time.Time) ([]int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Order, int64, error)
	// UpdateStatus performs the conditional transition from -> to. Zero
	// affected rows means the order was not in the expected status.
	UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) error
	// Activate moves VERIFIED -> ACTIVE and sets the rental window, which
	// is written exactly once here.
	Activate(ctx context.Context, id int64, startsAt, expiresAt time.Time) error
	// ExtendExpiry adds hours to the expiry of a still-active order. The
	// arithmetic runs in SQL so concurrent extensions serialize on the row
	// instead of losing each other's hours. Returns the new expiry.
	ExtendExpiry(ctx context.Context, id int64, extraHours int) (time.Time, error)
	SetTransactionID(ctx context.Context, id, transactionID int64) error
	SetReviewed(ctx context.Context, id int64) error
	// CompleteExpired closes every active order past its expiry, clearing
	// the window and enabling reviews. Returns the affected orders.
	CompleteExpired(ctx context.Context, now time.Time) ([]domain.Order, error)
	// ListExpiringSoon returns active orders expiring within the window
	// whose warning mail has not been sent yet.
	ListExpiringSoon(ctx context.Context, now time.Time, window time.Duration) ([]domain.Order, error)
	// DisableMailWarning flips can_send_mail true -> false; zero affected
	// rows means the warning was already claimed.
	DisableMailWarning(ctx context.Context, id int64) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Transaction, int64, error)
	// UpdateStatus settles a PENDING entry to a terminal status. Zero
	// affected rows means the entry was already settled.
	UpdateStatus(ctx context.Context, id int64, to domain.TransactionStatus) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}

// Store bundles the repositories and lets services run several of them in
// one database transaction. fn receives a Store bound to the transaction.
type Store interface {
	Users() UserRepository
	Accounts() AccountRepository
	Orders() OrderRepository
	Transactions() TransactionRepository
	Notifications() NotificationRepository
	ExecTx(ctx context.Context, fn func(Store) error) error
}
