package service

import (
	"context"
	"testing"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret-test-secret-test-secret!", 60)

	t.Run("Success With Default Role", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, nil, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 1
		}).Return(nil)

		user, err := svc.Signup(ctx, 5, "Casey", "new@example.com", "hunter2hunter2", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.UserRoleCustomer, user.Role)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, nil, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: 2}, nil)

		_, err := svc.Signup(ctx, 5, "Casey", "taken@example.com", "hunter2hunter2", "")
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Short Password Rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), tokens, nil, new(MockEmailService))

		_, err := svc.Signup(ctx, 5, "Casey", "new@example.com", "short", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret-test-secret-test-secret!", 60)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &domain.User{
		ID:           1,
		CompanyID:    5,
		Email:        "c@example.com",
		PasswordHash: string(hash),
		Role:         domain.UserRoleCustomer,
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, nil, new(MockEmailService))
		userRepo.On("GetByEmail", ctx, "c@example.com").Return(user, nil)

		token, got, err := svc.Login(ctx, "c@example.com", "hunter2hunter2")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user, got)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), claims.UserID)
		assert.Equal(t, int32(5), claims.CompanyID)
		assert.Equal(t, domain.UserRoleCustomer, claims.Role)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, nil, new(MockEmailService))
		userRepo.On("GetByEmail", ctx, "c@example.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "c@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, nil, new(MockEmailService))
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
