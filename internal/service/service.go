package service

import (
	"context"

	"gamerent-backend/internal/domain"
)

// CreateOrderInput carries everything a rental request needs. The amount is
// derived from the account's price table, never supplied by the caller.
type CreateOrderInput struct {
	AccountID            int64
	RentHours            int
	Night                bool
	VerificationPlatform string
	PlatformUsername     string
	PaymentMethod        domain.PaymentMethod
	ProofFileKey         *string
}

type OrderService interface {
	Create(ctx context.Context, userID int64, in CreateOrderInput) (*domain.Order, error)
	Approve(ctx context.Context, orderID int64) (*domain.Order, error)
	Reject(ctx context.Context, orderID int64) (*domain.Order, error)
	VerifyUser(ctx context.Context, orderID int64) (*domain.Order, error)
	Complete(ctx context.Context, orderID int64) (*domain.Order, error)
	CancelByUser(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	Extend(ctx context.Context, orderID int64, extraHours int) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Order, int64, error)
	List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error)
	MarkReviewed(ctx context.Context, orderID int64) error
}

type AccountService interface {
	Create(ctx context.Context, account *domain.Account) error
	Get(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context, filter domain.AccountFilter, page, pageSize int) ([]domain.Account, int64, error)
	SetStatus(ctx context.Context, id int64, status domain.AccountStatus, rentHours *int) error
	Release(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type LedgerService interface {
	RecordDeposit(ctx context.Context, userID int64, amountCents int64, method domain.PaymentMethod, proofFileKey *string) (*domain.Transaction, error)
	ApproveDeposit(ctx context.Context, id int64) (*domain.Transaction, error)
	RejectDeposit(ctx context.Context, id int64) (*domain.Transaction, error)
	CancelDeposit(ctx context.Context, userID, id int64) (*domain.Transaction, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	ListTransactions(ctx context.Context, userID int64, page, pageSize int) ([]domain.Transaction, int64, error)
}

type NotificationService interface {
	List(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, userID, id int64) error
}

// EmailService is the outbound notification dispatcher. Every method is
// best effort: callers log failures and never roll back state because of
// them.
type EmailService interface {
	SendNewOrderNotice(ctx context.Context, adminEmail string, orderID int64, amountCents int64) error
	SendRentalActiveNotice(ctx context.Context, email string, orderID int64, hours int) error
	SendExpiryWarning(ctx context.Context, email string, orderID int64, minutesLeft int) error
	SendOrderRejectedNotice(ctx context.Context, email string, orderID int64) error
	SendOrderCompletedNotice(ctx context.Context, email string, orderID int64) error
	SendDepositResolvedNotice(ctx context.Context, email string, depositID int64, approved bool) error
}
