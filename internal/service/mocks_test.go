package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/repository"
)

// mockStore satisfies repository.Store with testify mocks for every
// repository. ExecTx runs the callback against the same mocks, so tests see
// transactional calls exactly like direct ones.
type mockStore struct {
	users         *MockUserRepo
	accounts      *MockAccountRepo
	orders        *MockOrderRepo
	transactions  *MockTransactionRepo
	notifications *MockNotificationRepo
	execTxErr     error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:         new(MockUserRepo),
		accounts:      new(MockAccountRepo),
		orders:        new(MockOrderRepo),
		transactions:  new(MockTransactionRepo),
		notifications: new(MockNotificationRepo),
	}
}

func (s *mockStore) Users() repository.UserRepository                 { return s.users }
func (s *mockStore) Accounts() repository.AccountRepository           { return s.accounts }
func (s *mockStore) Orders() repository.OrderRepository               { return s.orders }
func (s *mockStore) Transactions() repository.TransactionRepository   { return s.transactions }
func (s *mockStore) Notifications() repository.NotificationRepository { return s.notifications }

func (s *mockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.execTxErr != nil {
		return s.execTxErr
	}
	return fn(s)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetBalance(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) Debit(ctx context.Context, id int64, amountCents int64) error {
	return m.Called(ctx, id, amountCents).Error(0)
}

func (m *MockUserRepo) Credit(ctx context.Context, id int64, amountCents int64) error {
	return m.Called(ctx, id, amountCents).Error(0)
}

func (m *MockUserRepo) SetVerificationCode(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	return m.Called(ctx, id, code, expiresAt).Error(0)
}

func (m *MockUserRepo) ClearExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockAccountRepo struct{ mock.Mock }

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) List(ctx context.Context, filter domain.AccountFilter, page, pageSize int) ([]domain.Account, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepo) MarkRented(ctx context.Context, id int64, expiresAt time.Time) error {
	return m.Called(ctx, id, expiresAt).Error(0)
}

func (m *MockAccountRepo) Release(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepo) ReleaseIfRented(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepo) ReleaseIfExpired(ctx context.Context, id int64, now time.Time) error {
	return m.Called(ctx, id, now).Error(0)
}

func (m *MockAccountRepo) SetUnavailable(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepo) SetRentExpiry(ctx context.Context, id int64, expiresAt time.Time) error {
	return m.Called(ctx, id, expiresAt).Error(0)
}

func (m *MockAccountRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepo) ReleaseExpired(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockOrderRepo struct{ mock.Mock }

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) List(ctx context.Context, filter domain.OrderFilter, page, pageSize int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockOrderRepo) Activate(ctx context.Context, id int64, startsAt, expiresAt time.Time) error {
	return m.Called(ctx, id, startsAt, expiresAt).Error(0)
}

func (m *MockOrderRepo) ExtendExpiry(ctx context.Context, id int64, extraHours int) (time.Time, error) {
	args := m.Called(ctx, id, extraHours)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockOrderRepo) SetTransactionID(ctx context.Context, id, transactionID int64) error {
	return m.Called(ctx, id, transactionID).Error(0)
}

func (m *MockOrderRepo) SetReviewed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepo) CompleteExpired(ctx context.Context, now time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepo) ListExpiringSoon(ctx context.Context, now time.Time, window time.Duration) ([]domain.Order, error) {
	args := m.Called(ctx, now, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepo) DisableMailWarning(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockTransactionRepo struct{ mock.Mock }

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepo) UpdateStatus(ctx context.Context, id int64, to domain.TransactionStatus) error {
	return m.Called(ctx, id, to).Error(0)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, userID int64, page, pageSize int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendNewOrderNotice(ctx context.Context, adminEmail string, orderID int64, amountCents int64) error {
	return m.Called(ctx, adminEmail, orderID, amountCents).Error(0)
}

func (m *MockEmailService) SendRentalActiveNotice(ctx context.Context, email string, orderID int64, hours int) error {
	return m.Called(ctx, email, orderID, hours).Error(0)
}

func (m *MockEmailService) SendExpiryWarning(ctx context.Context, email string, orderID int64, minutesLeft int) error {
	return m.Called(ctx, email, orderID, minutesLeft).Error(0)
}

func (m *MockEmailService) SendOrderRejectedNotice(ctx context.Context, email string, orderID int64) error {
	return m.Called(ctx, email, orderID).Error(0)
}

func (m *MockEmailService) SendOrderCompletedNotice(ctx context.Context, email string, orderID int64) error {
	return m.Called(ctx, email, orderID).Error(0)
}

func (m *MockEmailService) SendDepositResolvedNotice(ctx context.Context, email string, depositID int64, approved bool) error {
	return m.Called(ctx, email, depositID, approved).Error(0)
}
