package compile

import (
	"context"
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
	services "github.com/magabrotheeeer/rememory/internal/services/book"
)

// MockService реализует интерфейс compile.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CompileAndSend(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func TestCompileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ident := models.Identity{UserUID: "uid-1", Username: "testuser", Role: models.RoleUser}
	admin := models.Identity{UserUID: "uid-admin", Username: "admin", Role: models.RoleAdmin}

	tests := []struct {
		name           string
		url            string
		ident          *models.Identity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешный заказ книги",
			url:   "/questions/book",
			ident: &ident,
			setupMock: func(m *MockService) {
				m.On("CompileAndSend", mock.Anything, "uid-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `book compiled and sent to operator`,
		},
		{
			name:  "администратор заказывает книгу другого пользователя",
			url:   "/questions/book?userId=uid-2",
			ident: &admin,
			setupMock: func(m *MockService) {
				m.On("CompileAndSend", mock.Anything, "uid-2").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `book compiled and sent to operator`,
		},
		{
			name:           "чужой пользователь",
			url:            "/questions/book?userId=uid-2",
			ident:          &ident,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"access denied"}`,
		},
		{
			name:           "отсутствует авторизация",
			url:            "/questions/book",
			ident:          nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:  "реквизиты не заполнены",
			url:   "/questions/book",
			ident: &ident,
			setupMock: func(m *MockService) {
				m.On("CompileAndSend", mock.Anything, "uid-1").Return(services.ErrNoAddressSettings)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"address settings are not filled in"}`,
		},
		{
			name:  "нет отвеченных вопросов",
			url:   "/questions/book",
			ident: &ident,
			setupMock: func(m *MockService) {
				m.On("CompileAndSend", mock.Anything, "uid-1").Return(services.ErrNoAnsweredQuestions)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"no answered questions to compile"}`,
		},
		{
			name:  "ошибка рендеринга",
			url:   "/questions/book",
			ident: &ident,
			setupMock: func(m *MockService) {
				m.On("CompileAndSend", mock.Anything, "uid-1").Return(errors.New("wkhtmltopdf: exit status 1"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not compile and send book"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, tt.url, nil)

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
