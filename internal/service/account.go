package service

import (
	"context"
	"time"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/repository"
)

type accountService struct {
	store repository.Store
}

func NewAccountService(store repository.Store) AccountService {
	return &accountService{store: store}
}

func (s *accountService) Create(ctx context.Context, account *domain.Account) error {
	if account.AccountNumber == "" {
		return domain.Validation("account number is required")
	}
	if err := account.Price.Validate(); err != nil {
		return err
	}
	account.Status = domain.AccountStatusFree
	account.RentExpiresAt = nil
	return s.store.Accounts().Create(ctx, account)
}

func (s *accountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountStatusDeleted {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context, filter domain.AccountFilter, page, pageSize int) ([]domain.Account, int64, error) {
	return s.store.Accounts().List(ctx, filter, page, pageSize)
}

func (s *accountService) SetStatus(ctx context.Context, id int64, status domain.AccountStatus, rentHours *int) error {
	switch status {
	case domain.AccountStatusFree:
		return s.store.Accounts().Release(ctx, id)
	case domain.AccountStatusUnavailable:
		return s.store.Accounts().SetUnavailable(ctx, id)
	case domain.AccountStatusRented:
		if rentHours == nil || *rentHours <= 0 {
			return domain.Validation("rent hours are required to mark an account rented")
		}
		expiresAt := time.Now().UTC().Add(time.Duration(*rentHours) * time.Hour)
		return s.store.Accounts().MarkRented(ctx, id, expiresAt)
	default:
		return domain.Validation("unknown account status")
	}
}

func (s *accountService) Release(ctx context.Context, id int64) error {
	return s.store.Accounts().Release(ctx, id)
}

func (s *accountService) Delete(ctx context.Context, id int64) error {
	return s.store.Accounts().SoftDelete(ctx, id)
}
