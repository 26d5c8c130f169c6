package createglobal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rememory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rememory/internal/models"
)

// MockService реализует интерфейс createglobal.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateGlobal(ctx context.Context, title string, categoryID *string) (*models.GlobalQuestion, error) {
	args := m.Called(ctx, title, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlobalQuestion), args.Error(1)
}

func TestCreateGlobalHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	admin := models.Identity{UserUID: "uid-admin", Username: "admin", Role: models.RoleAdmin}
	user := models.Identity{UserUID: "uid-1", Username: "testuser", Role: models.RoleUser}
	categoryID := "ea815826-0c02-e446-a984-00f62a687381"

	tests := []struct {
		name           string
		requestBody    interface{}
		ident          *models.Identity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание записи каталога",
			requestBody: models.DummyGlobalQuestion{Title: "Ваше первое воспоминание?", CategoryID: &categoryID},
			ident:       &admin,
			setupMock: func(m *MockService) {
				m.On("CreateGlobal", mock.Anything, "Ваше первое воспоминание?", &categoryID).
					Return(&models.GlobalQuestion{ID: "gq-1", Title: "Ваше первое воспоминание?", CategoryID: categoryID}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"global_question"`,
		},
		{
			name:           "обычный пользователь получает отказ",
			requestBody:    models.DummyGlobalQuestion{Title: "Ваше первое воспоминание?"},
			ident:          &user,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"admin role required"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.DummyGlobalQuestion{Title: "Ваше первое воспоминание?"},
			ident:          nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "ошибка валидации",
			requestBody:    models.DummyGlobalQuestion{Title: ""},
			ident:          &admin,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Title is a required field`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: models.DummyGlobalQuestion{Title: "Ваше первое воспоминание?"},
			ident:       &admin,
			setupMock: func(m *MockService) {
				m.On("CreateGlobal", mock.Anything, "Ваше первое воспоминание?", (*string)(nil)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create global question"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/questions/newGlobalQuestion", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := req.Context()
			if tt.ident != nil {
				ctx = context.WithValue(ctx, middlewarectx.IdentityKey, *tt.ident)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
