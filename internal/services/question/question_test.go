package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rememory/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateQuestion(ctx context.Context, q models.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockRepository) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockRepository) UpdateQuestionAnswer(ctx context.Context, id string, answer *string, status string) (int, error) {
	args := m.Called(ctx, id, answer, status)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListQuestionsByUser(ctx context.Context, userUID string) ([]*models.Question, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockRepository) CreateGlobalQuestion(ctx context.Context, gq models.GlobalQuestion) error {
	args := m.Called(ctx, gq)
	return args.Error(0)
}

func (m *MockRepository) GetGlobalQuestion(ctx context.Context, id string) (*models.GlobalQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlobalQuestion), args.Error(1)
}

func (m *MockRepository) ListGlobalQuestions(ctx context.Context) ([]*models.GlobalQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GlobalQuestion), args.Error(1)
}

// MockCache кеш, который всегда промахивается.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func missCache() *MockCache {
	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)
	return cache
}

func strptr(s string) *string { return &s }

func TestListGlobal_ExcludesInstantiatedAndFiltersCategories(t *testing.T) {
	repo := new(MockRepository)

	gq1 := &models.GlobalQuestion{ID: "gq-1", Title: "Вопрос 1", CategoryID: "cat-a"}
	gq2 := &models.GlobalQuestion{ID: "gq-2", Title: "Вопрос 2", CategoryID: "cat-a"}
	gq3 := &models.GlobalQuestion{ID: "gq-3", Title: "Вопрос 3", CategoryID: "cat-b"}

	// gq-1 уже скопирован пользователем, собственный вопрос каталог не сужает
	repo.On("ListQuestionsByUser", mock.Anything, "uid-1").Return([]*models.Question{
		{ID: "q-1", Origin: models.OriginCatalog, GlobalQuestionID: strptr("gq-1"), UserUID: "uid-1"},
		{ID: "q-2", Origin: models.OriginCustom, UserUID: "uid-1"},
	}, nil)
	repo.On("ListGlobalQuestions", mock.Anything).Return([]*models.GlobalQuestion{gq1, gq2, gq3}, nil)

	svc := NewQuestionService(repo, missCache(), newNoopLogger())

	result, err := svc.ListGlobal(context.Background(), "uid-1", nil)
	require.NoError(t, err)
	assert.Equal(t, []*models.GlobalQuestion{gq2, gq3}, result)

	filtered, err := svc.ListGlobal(context.Background(), "uid-1", []string{"cat-a"})
	require.NoError(t, err)
	assert.Equal(t, []*models.GlobalQuestion{gq2}, filtered)
}

func TestInstantiate_SkipsMissingCatalogEntries(t *testing.T) {
	repo := new(MockRepository)

	repo.On("GetGlobalQuestion", mock.Anything, "gq-1").
		Return(&models.GlobalQuestion{ID: "gq-1", Title: "Вопрос 1", CategoryID: "cat-a"}, nil)
	repo.On("GetGlobalQuestion", mock.Anything, "gq-missing").Return(nil, sql.ErrNoRows)
	repo.On("CreateQuestion", mock.Anything, mock.AnythingOfType("models.Question")).Return(nil)

	svc := NewQuestionService(repo, missCache(), newNoopLogger())

	questions, err := svc.Instantiate(context.Background(), "uid-1", []string{"gq-1", "gq-missing"})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, models.OriginCatalog, q.Origin)
	assert.Equal(t, "gq-1", *q.GlobalQuestionID)
	assert.Equal(t, "Вопрос 1", q.Title)
	assert.Equal(t, "cat-a", q.CategoryID)
	assert.Equal(t, "uid-1", q.UserUID)
	assert.Equal(t, models.StatusUnanswered, q.Status)
	assert.Nil(t, q.Answer)
}

func TestInstantiate_NoDeduplication(t *testing.T) {
	repo := new(MockRepository)

	repo.On("GetGlobalQuestion", mock.Anything, "gq-1").
		Return(&models.GlobalQuestion{ID: "gq-1", Title: "Вопрос 1", CategoryID: "cat-a"}, nil)
	repo.On("CreateQuestion", mock.Anything, mock.AnythingOfType("models.Question")).Return(nil)

	svc := NewQuestionService(repo, missCache(), newNoopLogger())

	questions, err := svc.Instantiate(context.Background(), "uid-1", []string{"gq-1", "gq-1"})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	// Копии независимы: одинаковый источник, разные ID
	assert.NotEqual(t, questions[0].ID, questions[1].ID)
	repo.AssertNumberOfCalls(t, "CreateQuestion", 2)
}

func TestCreateCustom_UsesDefaultCategory(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateQuestion", mock.Anything, mock.AnythingOfType("models.Question")).Return(nil)

	svc := NewQuestionService(repo, missCache(), newNoopLogger())

	q, err := svc.CreateCustom(context.Background(), "uid-1", "Мой вопрос")
	require.NoError(t, err)
	assert.Equal(t, models.OriginCustom, q.Origin)
	assert.Nil(t, q.GlobalQuestionID)
	assert.Equal(t, DefaultCategoryID, q.CategoryID)
	assert.Equal(t, models.StatusUnanswered, q.Status)
}

func TestCreateGlobal_InvalidatesCatalogCache(t *testing.T) {
	repo := new(MockRepository)
	cache := missCache()
	repo.On("CreateGlobalQuestion", mock.Anything, mock.AnythingOfType("models.GlobalQuestion")).Return(nil)

	svc := NewQuestionService(repo, cache, newNoopLogger())

	gq, err := svc.CreateGlobal(context.Background(), "Новый вопрос", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCategoryID, gq.CategoryID)
	cache.AssertCalled(t, "Invalidate", catalogCacheKey)
}

func TestAnswer(t *testing.T) {
	owner := models.Identity{UserUID: "uid-1", Username: "owner", Role: models.RoleUser}
	stranger := models.Identity{UserUID: "uid-2", Username: "stranger", Role: models.RoleUser}
	admin := models.Identity{UserUID: "uid-admin", Username: "admin", Role: models.RoleAdmin}
	answered := models.StatusAnswered

	stored := func() *models.Question {
		return &models.Question{
			ID:         "q-1",
			Origin:     models.OriginCustom,
			Title:      "Вопрос",
			CategoryID: "cat-a",
			UserUID:    "uid-1",
			Status:     models.StatusUnanswered,
		}
	}

	tests := []struct {
		name        string
		ident       models.Identity
		req         models.DummyAnswer
		setupMocks  func(*MockRepository)
		wantErr     error
		wantStatus  string
		checkResult func(*testing.T, *models.Question)
	}{
		{
			name:  "ответ со сменой статуса",
			ident: owner,
			req:   models.DummyAnswer{Answer: "текст ответа", NewStatus: &answered},
			setupMocks: func(r *MockRepository) {
				r.On("GetQuestion", mock.Anything, "q-1").Return(stored(), nil)
				r.On("UpdateQuestionAnswer", mock.Anything, "q-1", mock.Anything, models.StatusAnswered).Return(1, nil)
			},
			checkResult: func(t *testing.T, q *models.Question) {
				assert.Equal(t, "текст ответа", *q.Answer)
				assert.Equal(t, models.StatusAnswered, q.Status)
			},
		},
		{
			name:  "ответ без статуса не меняет статус",
			ident: owner,
			req:   models.DummyAnswer{Answer: "черновик"},
			setupMocks: func(r *MockRepository) {
				r.On("GetQuestion", mock.Anything, "q-1").Return(stored(), nil)
				r.On("UpdateQuestionAnswer", mock.Anything, "q-1", mock.Anything, models.StatusUnanswered).Return(1, nil)
			},
			checkResult: func(t *testing.T, q *models.Question) {
				assert.Equal(t, "черновик", *q.Answer)
				assert.Equal(t, models.StatusUnanswered, q.Status)
				// Владелец, источник и категория не меняются
				assert.Equal(t, "uid-1", q.UserUID)
				assert.Equal(t, "cat-a", q.CategoryID)
				assert.Equal(t, models.OriginCustom, q.Origin)
			},
		},
		{
			name:  "администратор может отвечать на чужой вопрос",
			ident: admin,
			req:   models.DummyAnswer{Answer: "ответ"},
			setupMocks: func(r *MockRepository) {
				r.On("GetQuestion", mock.Anything, "q-1").Return(stored(), nil)
				r.On("UpdateQuestionAnswer", mock.Anything, "q-1", mock.Anything, models.StatusUnanswered).Return(1, nil)
			},
			checkResult: func(t *testing.T, q *models.Question) {
				assert.Equal(t, "ответ", *q.Answer)
			},
		},
		{
			name:  "чужой вопрос",
			ident: stranger,
			req:   models.DummyAnswer{Answer: "ответ"},
			setupMocks: func(r *MockRepository) {
				r.On("GetQuestion", mock.Anything, "q-1").Return(stored(), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:  "вопрос не найден",
			ident: owner,
			req:   models.DummyAnswer{Answer: "ответ"},
			setupMocks: func(r *MockRepository) {
				r.On("GetQuestion", mock.Anything, "q-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrQuestionNotFound,
		},
		{
			name:  "вопрос удален между чтением и обновлением",
			ident: owner,
			req:   models.DummyAnswer{Answer: "ответ"},
			setupMocks: func(r *MockRepository) {
				r.On("GetQuestion", mock.Anything, "q-1").Return(stored(), nil)
				r.On("UpdateQuestionAnswer", mock.Anything, "q-1", mock.Anything, models.StatusUnanswered).Return(0, nil)
			},
			wantErr: ErrQuestionNotFound,
		},
		{
			name:  "ошибка хранилища",
			ident: owner,
			req:   models.DummyAnswer{Answer: "ответ"},
			setupMocks: func(r *MockRepository) {
				r.On("GetQuestion", mock.Anything, "q-1").Return(nil, errors.New("db error"))
			},
			wantErr: nil, // произвольная ошибка, не сентинел
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			svc := NewQuestionService(repo, missCache(), newNoopLogger())

			q, err := svc.Answer(context.Background(), tt.ident, "q-1", tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.checkResult == nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkResult(t, q)
			repo.AssertExpectations(t)
		})
	}
}

func TestGetForOwner(t *testing.T) {
	owner := models.Identity{UserUID: "uid-1", Username: "owner", Role: models.RoleUser}
	stranger := models.Identity{UserUID: "uid-2", Username: "stranger", Role: models.RoleUser}

	repo := new(MockRepository)
	repo.On("GetQuestion", mock.Anything, "q-1").Return(&models.Question{ID: "q-1", UserUID: "uid-1"}, nil)

	svc := NewQuestionService(repo, missCache(), newNoopLogger())

	q, err := svc.GetForOwner(context.Background(), owner, "q-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)

	_, err = svc.GetForOwner(context.Background(), stranger, "q-1")
	require.ErrorIs(t, err, ErrForbidden)
}
