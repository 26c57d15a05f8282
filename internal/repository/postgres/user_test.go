package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"gamerent-backend/internal/domain"
)

func TestUserRepository_Debit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET balance_cents = balance_cents -").
			WithArgs(int64(1), int64(500)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Debit(ctx, 1, 500)
		assert.NoError(t, err)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		// The balance guard runs in SQL; zero rows means not enough funds.
		mock.ExpectExec("UPDATE users SET balance_cents = balance_cents -").
			WithArgs(int64(1), int64(999999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Debit(ctx, 1, 999999)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Credit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET balance_cents = balance_cents \\+").
			WithArgs(int64(1), int64(500)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Credit(ctx, 1, 500)
		assert.NoError(t, err)
	})

	t.Run("MissingUser", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET balance_cents = balance_cents \\+").
			WithArgs(int64(99), int64(500)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Credit(ctx, 99, 500)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT balance_cents FROM users").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"balance_cents"}).AddRow(2500))

	balance, err := repo.GetBalance(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2500), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ClearExpiredVerificationCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE users SET verification_code = NULL").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	cleared, err := repo.ClearExpiredVerificationCodes(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), cleared)
	assert.NoError(t, mock.ExpectationsWereMet())
}
