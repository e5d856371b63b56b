package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/strategy-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListForUser(ctx context.Context, userID int) ([]*models.Strategy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Strategy), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		withIdentity   bool
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:         "стратегии пользователя",
			withIdentity: true,
			setupMocks: func(s *MockService) {
				s.On("ListForUser", mock.Anything, 5).Return([]*models.Strategy{
					{ID: 1, Name: "Momentum Trading", Risk: models.RiskMedium},
					{ID: 3, Name: "Index Investing", Risk: models.RiskLow},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Index Investing"`,
		},
		{
			name:         "нет подписок — пустой массив",
			withIdentity: true,
			setupMocks: func(s *MockService) {
				s.On("ListForUser", mock.Anything, 5).Return([]*models.Strategy{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"strategies":[]}`,
		},
		{
			name:           "идентичность отсутствует в контексте",
			withIdentity:   false,
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"unauthorized"}`,
		},
		{
			name:         "ошибка хранилища",
			withIdentity: true,
			setupMocks: func(s *MockService) {
				s.On("ListForUser", mock.Anything, 5).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMocks(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/user/strategies", nil)
			if tt.withIdentity {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, 5))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
