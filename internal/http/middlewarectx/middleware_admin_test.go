package middlewarectx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/strategy-hub/internal/models"
	"github.com/magabrotheeeer/strategy-hub/internal/storage/repository"
)

// MockUserGetter реализует интерфейс middlewarectx.UserGetter
type MockUserGetter struct {
	mock.Mock
}

func (m *MockUserGetter) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		ctxUserID      any
		setupMock      func(*MockUserGetter)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:      "admin allowed",
			ctxUserID: 1,
			setupMock: func(m *MockUserGetter) {
				m.On("GetByID", mock.Anything, 1).
					Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:      "regular user denied",
			ctxUserID: 2,
			setupMock: func(m *MockUserGetter) {
				m.On("GetByID", mock.Anything, 2).
					Return(&models.User{ID: 2, Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			// Токен пережил удаление учетной записи: отказ неотличим
			// от отказа обычному пользователю.
			name:      "deleted user denied",
			ctxUserID: 3,
			setupMock: func(m *MockUserGetter) {
				m.On("GetByID", mock.Anything, 3).
					Return(nil, repository.ErrUserNotFound)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "storage failure",
			ctxUserID: 4,
			setupMock: func(m *MockUserGetter) {
				m.On("GetByID", mock.Anything, 4).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "identity missing from context",
			ctxUserID:      nil,
			setupMock:      func(_ *MockUserGetter) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserGetter)
			tt.setupMock(users)

			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.ctxUserID != nil {
				req = req.WithContext(context.WithValue(req.Context(), UserID, tt.ctxUserID))
			}
			w := httptest.NewRecorder()

			AdminMiddleware(users, newTestLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)

			users.AssertExpectations(t)
		})
	}
}
