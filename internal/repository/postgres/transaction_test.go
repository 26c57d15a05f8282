package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"gamerent-backend/internal/domain"
)

func TestTransactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tx := &domain.Transaction{
			UserID:      7,
			Type:        domain.TransactionTypeDeposit,
			AmountCents: 5000,
			Method:      domain.PaymentMethodBankTransfer,
		}

		mock.ExpectQuery("INSERT INTO transactions").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).
				AddRow(40, time.Now(), time.Now()))

		err := repo.Create(ctx, tx)
		assert.NoError(t, err)
		assert.Equal(t, int64(40), tx.ID)
		assert.Equal(t, domain.TransactionStatusPending, tx.Status)
	})

	t.Run("DuplicatePendingDeposit", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO transactions").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "one_pending_deposit_per_user"})

		err := repo.Create(ctx, &domain.Transaction{UserID: 7, Type: domain.TransactionTypeDeposit})
		assert.ErrorIs(t, err, domain.ErrPendingDeposit)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("PendingEntrySettles", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET status =").
			WithArgs(int64(40), domain.TransactionStatusCompleted).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 40, domain.TransactionStatusCompleted)
		assert.NoError(t, err)
	})

	t.Run("SettledEntryRefused", func(t *testing.T) {
		// PENDING guard in SQL: a second settle touches zero rows.
		mock.ExpectExec("UPDATE transactions SET status =").
			WithArgs(int64(40), domain.TransactionStatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 40, domain.TransactionStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrTransactionSettled)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
