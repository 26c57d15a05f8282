package service

import (
	"context"
	"fmt"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/logger"
	"gamerent-backend/internal/repository"
)

type ledgerService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewLedgerService(store repository.Store, emailSvc EmailService) LedgerService {
	return &ledgerService{store: store, emailSvc: emailSvc}
}

func (s *ledgerService) RecordDeposit(ctx context.Context, userID int64, amountCents int64, method domain.PaymentMethod, proofFileKey *string) (*domain.Transaction, error) {
	if amountCents <= 0 {
		return nil, domain.Validation("deposit amount must be positive")
	}
	if method == domain.PaymentMethodBalance {
		return nil, domain.Validation("balance cannot fund a deposit")
	}
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, err
	}

	deposit := &domain.Transaction{
		UserID:       userID,
		Type:         domain.TransactionTypeDeposit,
		AmountCents:  amountCents,
		Status:       domain.TransactionStatusPending,
		Method:       method,
		ProofFileKey: proofFileKey,
		Description:  fmt.Sprintf("Balance deposit via %s", method),
	}
	if err := s.store.Transactions().Create(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

func (s *ledgerService) ApproveDeposit(ctx context.Context, id int64) (*domain.Transaction, error) {
	deposit, err := s.depositByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The status flip and the balance credit land in one transaction;
	// the conditional PENDING guard makes concurrent approve/reject on
	// the same entry lose cleanly.
	err = s.store.ExecTx(ctx, func(st repository.Store) error {
		if err := st.Transactions().UpdateStatus(ctx, id, domain.TransactionStatusCompleted); err != nil {
			return err
		}
		return st.Users().Credit(ctx, deposit.UserID, deposit.AmountCents)
	})
	if err != nil {
		return nil, err
	}
	deposit.Status = domain.TransactionStatusCompleted

	s.sendResolvedNotice(ctx, deposit, true)
	return deposit, nil
}

func (s *ledgerService) RejectDeposit(ctx context.Context, id int64) (*domain.Transaction, error) {
	deposit, err := s.depositByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Transactions().UpdateStatus(ctx, id, domain.TransactionStatusCancelled); err != nil {
		return nil, err
	}
	deposit.Status = domain.TransactionStatusCancelled

	s.sendResolvedNotice(ctx, deposit, false)
	return deposit, nil
}

func (s *ledgerService) CancelDeposit(ctx context.Context, userID, id int64) (*domain.Transaction, error) {
	deposit, err := s.depositByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deposit.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	if err := s.store.Transactions().UpdateStatus(ctx, id, domain.TransactionStatusCancelled); err != nil {
		return nil, err
	}
	deposit.Status = domain.TransactionStatusCancelled
	return deposit, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.store.Users().GetBalance(ctx, userID)
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID int64, page, pageSize int) ([]domain.Transaction, int64, error) {
	return s.store.Transactions().ListByUser(ctx, userID, page, pageSize)
}

func (s *ledgerService) depositByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	tx, err := s.store.Transactions().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Type != domain.TransactionTypeDeposit {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

func (s *ledgerService) sendResolvedNotice(ctx context.Context, deposit *domain.Transaction, approved bool) {
	user, err := s.store.Users().GetByID(ctx, deposit.UserID)
	if err != nil {
		logger.Warn("Could not load user for deposit notice", "deposit_id", deposit.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendDepositResolvedNotice(ctx, user.Email, deposit.ID, approved); err != nil {
		logger.Error("Failed to send deposit resolved notice", "deposit_id", deposit.ID, "error", err)
	}
}
