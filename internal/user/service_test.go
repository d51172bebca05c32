package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, hashedPassword, role string) (User, error) {
	args := m.Called(ctx, name, email, hashedPassword, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

// --- Tests ---

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "testsecret")

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		created := User{ID: 1, Name: "Asha", Email: "asha@example.com", Role: RoleBuyer}
		mockRepo.On("Create", ctx, "Asha", "asha@example.com", mock.AnythingOfType("string"), "BUYER").
			Return(created, nil)

		token, u, err := svc.Register(ctx, "Asha", "asha@example.com", "secret", RoleBuyer)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)

		// The repo gets the bcrypt hash, never the raw password.
		hashed := mockRepo.Calls[0].Arguments.String(3)
		assert.NotEqual(t, "secret", hashed)
		assert.True(t, CheckPasswordHash("secret", hashed))
	})

	t.Run("AdminRoleRejected", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, _, err := svc.Register(ctx, "Eve", "eve@example.com", "secret", RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("UnknownRole", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, _, err := svc.Register(ctx, "Eve", "eve@example.com", "secret", "MANAGER")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "Asha", "asha@example.com", mock.AnythingOfType("string"), "BUYER").
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret", RoleBuyer)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "testsecret")

	hashed, _ := HashPassword("secret")
	stored := User{ID: 1, Email: "asha@example.com", Password: hashed, Role: RoleBuyer}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)

		token, u, err := svc.Login(ctx, "asha@example.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, "BUYER", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)

		_, _, err := svc.Login(ctx, "asha@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "nobody@example.com").Return(User{}, ErrUserNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
