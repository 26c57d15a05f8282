package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/security"
)

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret-that-is-long-enough-0", 60)

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := NewAuthService(store, tokens)

		store.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@test.com" && u.Role == domain.RoleUser && u.PasswordHash != "secret-password"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil).Once()

		user, token, err := svc.Signup(ctx, "New@Test.com ", "Renter", "secret-password")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(7), user.ID)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc := NewAuthService(newMockStore(), tokens)
		_, _, err := svc.Signup(ctx, "new@test.com", "Renter", "short")
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("BadEmail", func(t *testing.T) {
		svc := NewAuthService(newMockStore(), tokens)
		_, _, err := svc.Signup(ctx, "not-an-email", "Renter", "secret-password")
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret-that-is-long-enough-0", 60)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	existing := &domain.User{ID: 7, Email: "u@test.com", PasswordHash: string(hash), Role: domain.RoleUser}

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := NewAuthService(store, tokens)

		store.users.On("GetByEmail", ctx, "u@test.com").Return(existing, nil).Once()

		user, token, err := svc.Login(ctx, "u@test.com", "secret-password")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		store := newMockStore()
		svc := NewAuthService(store, tokens)

		store.users.On("GetByEmail", ctx, "u@test.com").Return(existing, nil).Once()

		_, _, err := svc.Login(ctx, "u@test.com", "wrong")
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("UnknownEmailSameAnswer", func(t *testing.T) {
		store := newMockStore()
		svc := NewAuthService(store, tokens)

		store.users.On("GetByEmail", ctx, "nobody@test.com").Return(nil, domain.ErrUserNotFound).Once()

		_, _, err := svc.Login(ctx, "nobody@test.com", "secret-password")
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})
}
