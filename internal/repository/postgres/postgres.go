package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"gamerent-backend/internal/repository"
)

// DBTX is the subset of database/sql both *sql.DB and *sql.Tx satisfy, so
// every repository can run standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db            *sql.DB
	conn          DBTX
	users         repository.UserRepository
	accounts      repository.AccountRepository
	orders        repository.OrderRepository
	transactions  repository.TransactionRepository
	notifications repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, conn DBTX) *Store {
	return &Store{
		db:            db,
		conn:          conn,
		users:         NewUserRepository(conn),
		accounts:      NewAccountRepository(conn),
		orders:        NewOrderRepository(conn),
		transactions:  NewTransactionRepository(conn),
		notifications: NewNotificationRepository(conn),
	}
}

func (s *Store) Users() repository.UserRepository                 { return s.users }
func (s *Store) Accounts() repository.AccountRepository           { return s.accounts }
func (s *Store) Orders() repository.OrderRepository               { return s.orders }
func (s *Store) Transactions() repository.TransactionRepository   { return s.transactions }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }

// ExecTx runs fn against a Store bound to a single database transaction.
// Any error from fn rolls everything back, so multi-entity transitions are
// all-or-nothing. Nested calls are not supported.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return errors.New("nested transactions are not supported")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newStore(nil, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %w", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation, optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
