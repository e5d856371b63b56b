package user

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/strategy-hub/internal/lib/password"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
	"github.com/magabrotheeeer/strategy-hub/internal/storage/repository"
)

// MockRepository реализует интерфейс user.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	args := m.Called(ctx, username, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockRepository) UpdateLastLogin(ctx context.Context, id int) (time.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockRepository) DeleteUser(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestService_Register(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, newTestLogger())

	created := &models.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@x.com",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	repo.On("CreateUser", mock.Anything, "alice", "alice@x.com", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			// В хранилище попадает bcrypt-хэш, а не исходный пароль.
			hash := args.String(3)
			assert.NotEqual(t, "pw1", hash)
			assert.True(t, password.Verify(hash, "pw1"))
		}).
		Return(created, nil)

	u, err := service.Register(context.Background(), "alice", "alice@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, created, u)

	repo.AssertExpectations(t)
}

func TestService_Register_Duplicate(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, newTestLogger())

	repo.On("CreateUser", mock.Anything, "alice", "alice@x.com", mock.AnythingOfType("string")).
		Return(nil, repository.ErrDuplicate)

	u, err := service.Register(context.Background(), "alice", "alice@x.com", "pw1")
	assert.Nil(t, u)
	assert.True(t, errors.Is(err, repository.ErrDuplicate))
}

func TestService_Authenticate(t *testing.T) {
	hash, err := password.GetHash("correct_password")
	require.NoError(t, err)

	stored := &models.User{
		ID:           5,
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: hash,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockRepository)
		wantUser  bool
	}{
		{
			name:     "correct credentials",
			username: "alice",
			password: "correct_password",
			setupMock: func(m *MockRepository) {
				u := *stored
				m.On("GetUserByUsername", mock.Anything, "alice").Return(&u, nil)
				m.On("UpdateLastLogin", mock.Anything, 5).Return(time.Now(), nil)
			},
			wantUser: true,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong_password",
			setupMock: func(m *MockRepository) {
				u := *stored
				m.On("GetUserByUsername", mock.Anything, "alice").Return(&u, nil)
			},
			wantUser: false,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "correct_password",
			setupMock: func(m *MockRepository) {
				m.On("GetUserByUsername", mock.Anything, "nobody").
					Return(nil, repository.ErrUserNotFound)
			},
			wantUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)
			service := New(repo, newTestLogger())

			u, err := service.Authenticate(context.Background(), tt.username, tt.password)
			require.NoError(t, err)

			if tt.wantUser {
				require.NotNil(t, u)
				assert.Equal(t, 5, u.ID)
				// Хэш пароля не покидает сценарий аутентификации.
				assert.Empty(t, u.PasswordHash)
			} else {
				// Неизвестный username и неверный пароль неразличимы.
				assert.Nil(t, u)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Delete(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, newTestLogger())

	repo.On("DeleteUser", mock.Anything, 3).Return(true, nil)
	repo.On("DeleteUser", mock.Anything, 999).Return(false, nil)

	ok, err := service.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}
