package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/logger"
	"gamerent-backend/internal/repository"
)

type orderService struct {
	store      repository.Store
	emailSvc   EmailService
	adminEmail string
}

func NewOrderService(store repository.Store, emailSvc EmailService, adminEmail string) OrderService {
	return &orderService{store: store, emailSvc: emailSvc, adminEmail: adminEmail}
}

func (s *orderService) Create(ctx context.Context, userID int64, in CreateOrderInput) (*domain.Order, error) {
	switch in.PaymentMethod {
	case domain.PaymentMethodBalance, domain.PaymentMethodBankTransfer, domain.PaymentMethodCrypto:
	default:
		return nil, domain.Validation("unknown payment method")
	}
	if in.PlatformUsername == "" || in.VerificationPlatform == "" {
		return nil, domain.Validation("verification contact is required")
	}

	account, err := s.store.Accounts().GetByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountStatusDeleted {
		return nil, domain.ErrAccountNotFound
	}

	hours := in.RentHours
	if in.Night {
		hours = domain.NightRentHours
	}
	amount, err := account.Price.AmountFor(in.RentHours, in.Night)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:               userID,
		AccountID:            account.ID,
		AmountCents:          amount,
		Status:               domain.OrderStatusPending,
		RentHours:            hours,
		PaymentMethod:        in.PaymentMethod,
		VerificationPlatform: in.VerificationPlatform,
		PlatformUsername:     in.PlatformUsername,
	}

	err = s.store.ExecTx(ctx, func(st repository.Store) error {
		if err := st.Orders().Create(ctx, order); err != nil {
			return err
		}

		payment := &domain.Transaction{
			UserID:      userID,
			Type:        domain.TransactionTypePayment,
			AmountCents: amount,
			Method:      in.PaymentMethod,
			OrderID:     &order.ID,
			Description: fmt.Sprintf("Rental payment for account %s", account.AccountNumber),
		}
		if in.PaymentMethod.Instant() {
			// Balance debit settles synchronously; the entry is born
			// COMPLETED or the whole request fails.
			if err := st.Users().Debit(ctx, userID, amount); err != nil {
				return err
			}
			payment.Status = domain.TransactionStatusCompleted
		} else {
			payment.Status = domain.TransactionStatusPending
			payment.ProofFileKey = in.ProofFileKey
		}
		if err := st.Transactions().Create(ctx, payment); err != nil {
			return err
		}
		order.TransactionID = &payment.ID
		return st.Orders().SetTransactionID(ctx, order.ID, payment.ID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			// Nothing from the rolled-back request survives, but the
			// failed attempt is still recorded as a cancelled entry so
			// the ledger explains what happened.
			s.recordCancelledPayment(ctx, userID, amount, in, account.AccountNumber)
		}
		return nil, err
	}

	if sendErr := s.emailSvc.SendNewOrderNotice(ctx, s.adminEmail, order.ID, order.AmountCents); sendErr != nil {
		logger.Error("Failed to send new order notice", "order_id", order.ID, "error", sendErr)
	}
	s.notify(ctx, userID, "Order received",
		fmt.Sprintf("Your rental request for account %s is awaiting payment confirmation", account.AccountNumber),
		order.ID)

	return order, nil
}

func (s *orderService) recordCancelledPayment(ctx context.Context, userID, amount int64, in CreateOrderInput, accountNumber string) {
	entry := &domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionTypePayment,
		AmountCents: amount,
		Status:      domain.TransactionStatusCancelled,
		Method:      in.PaymentMethod,
		Description: fmt.Sprintf("Rejected rental payment for account %s: insufficient balance", accountNumber),
	}
	if err := s.store.Transactions().Create(ctx, entry); err != nil {
		logger.Error("Failed to record cancelled payment entry", "user_id", userID, "error", err)
	}
}

func (s *orderService) Approve(ctx context.Context, orderID int64) (*domain.Order, error) {
	if err := s.store.Orders().UpdateStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusPaid); err != nil {
		return nil, s.transitionErr(ctx, orderID, err)
	}
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, order.UserID, "Payment confirmed", "Your payment was confirmed, verification is next", orderID)
	return order, nil
}

func (s *orderService) Reject(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domain.ErrTerminalOrder
	}
	if err := s.cancel(ctx, order); err != nil {
		return nil, err
	}

	if user, uerr := s.store.Users().GetByID(ctx, order.UserID); uerr == nil {
		if sendErr := s.emailSvc.SendOrderRejectedNotice(ctx, user.Email, order.ID); sendErr != nil {
			logger.Error("Failed to send order rejected notice", "order_id", order.ID, "error", sendErr)
		}
	}
	s.notify(ctx, order.UserID, "Order cancelled", "Your rental request was cancelled", orderID)

	order.Status = domain.OrderStatusCancelled
	return order, nil
}

// cancel applies the shared cancellation side effects: the conditional
// status write plus settling the paired ledger entry, in one transaction.
func (s *orderService) cancel(ctx context.Context, order *domain.Order) error {
	return s.store.ExecTx(ctx, func(st repository.Store) error {
		if err := st.Orders().UpdateStatus(ctx, order.ID, order.Status, domain.OrderStatusCancelled); err != nil {
			return err
		}
		if order.Status == domain.OrderStatusActive {
			// Force-ending a running rental frees the account in the same
			// transaction; it must not stay occupied with no active order.
			if err := st.Accounts().ReleaseIfRented(ctx, order.AccountID); err != nil {
				return err
			}
		}
		if order.TransactionID == nil {
			// Orders are created with their payment entry, but a missing
			// pair must not crash the cancellation.
			logger.Warn("Cancelling order with no paired ledger entry", "order_id", order.ID)
			return nil
		}
		err := st.Transactions().UpdateStatus(ctx, *order.TransactionID, domain.TransactionStatusCancelled)
		if errors.Is(err, domain.ErrTransactionSettled) || errors.Is(err, domain.ErrTransactionNotFound) {
			logger.Warn("Paired ledger entry not cancellable", "order_id", order.ID, "transaction_id", *order.TransactionID, "error", err)
			return nil
		}
		return err
	})
}

func (s *orderService) VerifyUser(ctx context.Context, orderID int64) (*domain.Order, error) {
	if err := s.store.Orders().UpdateStatus(ctx, orderID, domain.OrderStatusPaid, domain.OrderStatusVerified); err != nil {
		return nil, s.transitionErr(ctx, orderID, err)
	}
	// The returned order carries the verification contact the operator
	// reaches out on.
	return s.store.Orders().GetByID(ctx, orderID)
}

func (s *orderService) Complete(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusVerified {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(order.RentHours) * time.Hour)
	err = s.store.ExecTx(ctx, func(st repository.Store) error {
		// Account, order and ledger move together or not at all. The
		// conditional FREE -> RENTED update is what rejects a concurrent
		// handoff of the same account.
		if err := st.Accounts().MarkRented(ctx, order.AccountID, expiresAt); err != nil {
			return err
		}
		if err := st.Orders().Activate(ctx, order.ID, now, expiresAt); err != nil {
			return err
		}
		if order.TransactionID == nil {
			logger.Warn("Activating order with no paired ledger entry", "order_id", order.ID)
			return nil
		}
		if order.PaymentMethod.Instant() {
			// Balance payments settled at creation.
			return nil
		}
		return st.Transactions().UpdateStatus(ctx, *order.TransactionID, domain.TransactionStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusActive
	order.StartsAt = &now
	order.ExpiresAt = &expiresAt

	if user, uerr := s.store.Users().GetByID(ctx, order.UserID); uerr == nil {
		if sendErr := s.emailSvc.SendRentalActiveNotice(ctx, user.Email, order.ID, order.RentHours); sendErr != nil {
			logger.Error("Failed to send rental active notice", "order_id", order.ID, "error", sendErr)
		}
	}
	s.notify(ctx, order.UserID, "Rental active",
		fmt.Sprintf("Your rental is active for the next %d hours", order.RentHours), order.ID)

	return order, nil
}

func (s *orderService) CancelByUser(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.cancel(ctx, order); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusCancelled
	return order, nil
}

func (s *orderService) Extend(ctx context.Context, orderID int64, extraHours int) (*domain.Order, error) {
	if extraHours <= 0 {
		return nil, domain.Validation("extension must add at least one hour")
	}
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusActive || order.ExpiresAt == nil {
		return nil, domain.ErrInvalidTransition
	}

	err = s.store.ExecTx(ctx, func(st repository.Store) error {
		// The order row carries the arithmetic, so concurrent extensions
		// serialize there; the account then follows the returned expiry to
		// keep both in lockstep.
		newExpiry, err := st.Orders().ExtendExpiry(ctx, order.ID, extraHours)
		if err != nil {
			return err
		}
		order.ExpiresAt = &newExpiry
		return st.Accounts().SetRentExpiry(ctx, order.AccountID, newExpiry)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Order, int64, error) {
	return s.store.Orders().ListByUser(ctx, userID, page, pageSize)
}

func (s *orderService) List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error) {
	return s.store.Orders().List(ctx, filter, page, pageSize)
}

func (s *orderService) MarkReviewed(ctx context.Context, orderID int64) error {
	return s.store.Orders().SetReviewed(ctx, orderID)
}

// transitionErr distinguishes "order missing" from "wrong status" when a
// conditional update touched zero rows.
func (s *orderService) transitionErr(ctx context.Context, orderID int64, err error) error {
	if !errors.Is(err, domain.ErrInvalidTransition) {
		return err
	}
	if _, getErr := s.store.Orders().GetByID(ctx, orderID); getErr != nil {
		return getErr
	}
	return err
}

func (s *orderService) notify(ctx context.Context, userID int64, title, message string, orderID int64) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"order_id": fmt.Sprintf("%d", orderID),
		},
	}
	if err := s.store.Notifications().Create(ctx, note); err != nil {
		logger.Error("Failed to create notification", "user_id", userID, "error", err)
	}
}
