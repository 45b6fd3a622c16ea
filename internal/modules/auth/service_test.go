package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"airport/internal/domain"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func newTestService(users *mockUserRepo, jwt *mockJWTService) *Service {
	svc := NewService(users, jwt)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	jwt := new(mockJWTService)
	svc := newTestService(users, jwt)
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "ann@example.com").Return(false, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ann@example.com" &&
			u.Role == domain.RoleCustomer &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 5
	}).Return(nil)
	jwt.On("GenerateToken", int64(5), "customer").Return("token-5", nil)

	user, token, err := svc.Register(ctx, RegisterRequest{Name: " Ann ", Email: " Ann@Example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "token-5", token)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "Ann", user.Name)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
	jwt.AssertExpectations(t)
}

func TestService_Register_EmailExists(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users, new(mockJWTService))
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "ann@example.com").Return(true, nil)

	_, _, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_UniqueRace(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users, new(mockJWTService))
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "ann@example.com").Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, _, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := func() *domain.User {
		return &domain.User{ID: 9, Email: "ann@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin}
	}

	t.Run("success", func(t *testing.T) {
		users := new(mockUserRepo)
		jwt := new(mockJWTService)
		svc := newTestService(users, jwt)
		ctx := context.Background()

		users.On("GetByEmail", ctx, "ann@example.com").Return(stored(), nil)
		jwt.On("GenerateToken", int64(9), "admin").Return("tok", nil)

		user, token, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := newTestService(users, new(mockJWTService))
		ctx := context.Background()

		users.On("GetByEmail", ctx, "ann@example.com").Return(stored(), nil)

		_, _, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := newTestService(users, new(mockJWTService))
		ctx := context.Background()

		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("storage failure", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := newTestService(users, new(mockJWTService))
		ctx := context.Background()

		users.On("GetByEmail", ctx, "ann@example.com").Return(nil, errors.New("db down"))

		_, _, err := svc.Login(ctx, LoginRequest{Email: "ann@example.com", Password: "password123"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_GetMe_NotFound(t *testing.T) {
	users := new(mockUserRepo)
	svc := newTestService(users, new(mockJWTService))
	ctx := context.Background()

	users.On("GetByID", ctx, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetMe(ctx, 3)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
