package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gamerent-backend/internal/domain"
)

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("ForcesFreeStatus", func(t *testing.T) {
		store := newMockStore()
		svc := NewAccountService(store)

		store.accounts.On("Create", ctx, mock.MatchedBy(func(a *domain.Account) bool {
			return a.Status == domain.AccountStatusFree && a.RentExpiresAt == nil
		})).Return(nil).Once()

		err := svc.Create(ctx, &domain.Account{
			AccountNumber: "ACC-001",
			Status:        domain.AccountStatusRented,
			Price:         domain.PriceTable{HourlyCents: 600},
		})
		assert.NoError(t, err)
		store.accounts.AssertExpectations(t)
	})

	t.Run("RequiresNumber", func(t *testing.T) {
		svc := NewAccountService(newMockStore())
		err := svc.Create(ctx, &domain.Account{Price: domain.PriceTable{HourlyCents: 600}})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("RequiresUsablePriceTable", func(t *testing.T) {
		svc := NewAccountService(newMockStore())
		err := svc.Create(ctx, &domain.Account{AccountNumber: "ACC-001"})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}

func TestAccountService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("DeletedAccountHidden", func(t *testing.T) {
		store := newMockStore()
		svc := NewAccountService(store)

		store.accounts.On("GetByID", ctx, int64(10)).Return(&domain.Account{
			ID: 10, Status: domain.AccountStatusDeleted,
		}, nil).Once()

		_, err := svc.Get(ctx, 10)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestAccountService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("RentedNeedsHours", func(t *testing.T) {
		svc := NewAccountService(newMockStore())
		err := svc.SetStatus(ctx, 10, domain.AccountStatusRented, nil)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("RentedSetsExpiry", func(t *testing.T) {
		store := newMockStore()
		svc := NewAccountService(store)

		hours := 6
		store.accounts.On("MarkRented", ctx, int64(10), mock.AnythingOfType("time.Time")).Return(nil).Once()

		err := svc.SetStatus(ctx, 10, domain.AccountStatusRented, &hours)
		assert.NoError(t, err)
		store.accounts.AssertExpectations(t)
	})

	t.Run("FreeReleases", func(t *testing.T) {
		store := newMockStore()
		svc := NewAccountService(store)

		store.accounts.On("Release", ctx, int64(10)).Return(nil).Once()

		assert.NoError(t, svc.SetStatus(ctx, 10, domain.AccountStatusFree, nil))
	})

	t.Run("DeletedNotSettable", func(t *testing.T) {
		svc := NewAccountService(newMockStore())
		err := svc.SetStatus(ctx, 10, domain.AccountStatusDeleted, nil)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}
