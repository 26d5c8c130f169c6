// Package services содержит бизнес-логику работы с каталогом вопросов
// и персональными вопросами пользователей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/rememory/internal/models"
)

// DefaultCategoryID категория по умолчанию для вопросов без явной категории.
const DefaultCategoryID = "ea815826-0c02-e446-a984-00f62a687381"

const catalogCacheKey = "catalog:global_questions"

// Ошибки бизнес-логики вопросов.
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrForbidden        = errors.New("access denied")
)

// QuestionRepository определяет методы для работы с вопросами в хранилище.
type QuestionRepository interface {
	// CreateQuestion добавляет персональный вопрос пользователя.
	CreateQuestion(ctx context.Context, q models.Question) error
	// GetQuestion возвращает персональный вопрос по ID.
	GetQuestion(ctx context.Context, id string) (*models.Question, error)
	// UpdateQuestionAnswer обновляет ответ и статус, возвращает число изменённых строк.
	UpdateQuestionAnswer(ctx context.Context, id string, answer *string, status string) (int, error)
	// ListQuestionsByUser возвращает все вопросы пользователя в порядке создания.
	ListQuestionsByUser(ctx context.Context, userUID string) ([]*models.Question, error)
	// CreateGlobalQuestion добавляет запись каталога.
	CreateGlobalQuestion(ctx context.Context, gq models.GlobalQuestion) error
	// GetGlobalQuestion возвращает запись каталога по ID.
	GetGlobalQuestion(ctx context.Context, id string) (*models.GlobalQuestion, error)
	// ListGlobalQuestions возвращает все записи каталога.
	ListGlobalQuestions(ctx context.Context) ([]*models.GlobalQuestion, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// QuestionService реализует бизнес-логику работы с вопросами, включая кеширование каталога.
type QuestionService struct {
	repo  QuestionRepository
	cache Cache
	log   *slog.Logger
}

// NewQuestionService создает новый экземпляр QuestionService.
func NewQuestionService(repo QuestionRepository, cache Cache, log *slog.Logger) *QuestionService {
	return &QuestionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListGlobal возвращает записи каталога, исключая уже скопированные пользователем
// forUserUID (если задан) и оставляя только категории из categoryIDs (если заданы).
func (s *QuestionService) ListGlobal(ctx context.Context, forUserUID string, categoryIDs []string) ([]*models.GlobalQuestion, error) {
	exclude := make(map[string]struct{})
	if forUserUID != "" {
		questions, err := s.repo.ListQuestionsByUser(ctx, forUserUID)
		if err != nil {
			return nil, err
		}
		for _, q := range questions {
			if q.Origin == models.OriginCatalog && q.GlobalQuestionID != nil {
				exclude[*q.GlobalQuestionID] = struct{}{}
			}
		}
	}

	all, err := s.listGlobalCached(ctx)
	if err != nil {
		return nil, err
	}

	var categories map[string]struct{}
	if len(categoryIDs) > 0 {
		categories = make(map[string]struct{}, len(categoryIDs))
		for _, id := range categoryIDs {
			categories[id] = struct{}{}
		}
	}

	result := make([]*models.GlobalQuestion, 0, len(all))
	for _, gq := range all {
		if _, skip := exclude[gq.ID]; skip {
			continue
		}
		if categories != nil {
			if _, ok := categories[gq.CategoryID]; !ok {
				continue
			}
		}
		result = append(result, gq)
	}
	return result, nil
}

func (s *QuestionService) listGlobalCached(ctx context.Context) ([]*models.GlobalQuestion, error) {
	var cached []*models.GlobalQuestion
	found, err := s.cache.Get(catalogCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read catalog from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	all, err := s.repo.ListGlobalQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(catalogCacheKey, all, time.Hour); err != nil {
		s.log.Warn("failed to cache catalog", slog.String("key", catalogCacheKey), slog.Any("err", err))
	}
	return all, nil
}

// Instantiate материализует персональные копии вопросов каталога для пользователя.
// Записи каталога, которых больше нет, молча пропускаются. Проверка на дубликаты
// не выполняется: повторный вызов с тем же ID каталога создаст второй экземпляр.
func (s *QuestionService) Instantiate(ctx context.Context, userUID string, globalQuestionIDs []string) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, len(globalQuestionIDs))
	for _, globalQuestionID := range globalQuestionIDs {
		globalQuestion, err := s.repo.GetGlobalQuestion(ctx, globalQuestionID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}

		gqID := globalQuestion.ID
		question := models.Question{
			ID:               uuid.NewString(),
			Origin:           models.OriginCatalog,
			GlobalQuestionID: &gqID,
			Title:            globalQuestion.Title,
			CategoryID:       globalQuestion.CategoryID,
			UserUID:          userUID,
			Status:           models.StatusUnanswered,
		}
		if err := s.repo.CreateQuestion(ctx, question); err != nil {
			return nil, err
		}
		questions = append(questions, &question)
	}

	s.log.Info("instantiated questions from catalog",
		slog.String("user_uid", userUID), slog.Int("count", len(questions)))
	return questions, nil
}

// CreateCustom создает собственный вопрос пользователя без привязки к каталогу.
func (s *QuestionService) CreateCustom(ctx context.Context, userUID, title string) (*models.Question, error) {
	question := models.Question{
		ID:         uuid.NewString(),
		Origin:     models.OriginCustom,
		Title:      title,
		CategoryID: DefaultCategoryID,
		UserUID:    userUID,
		Status:     models.StatusUnanswered,
	}
	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	s.log.Info("created custom question", slog.String("id", question.ID))
	return &question, nil
}

// CreateGlobal создает новую запись каталога. Доступно только администратору,
// проверка роли выполняется на уровне HTTP.
func (s *QuestionService) CreateGlobal(ctx context.Context, title string, categoryID *string) (*models.GlobalQuestion, error) {
	category := DefaultCategoryID
	if categoryID != nil {
		category = *categoryID
	}
	globalQuestion := models.GlobalQuestion{
		ID:         uuid.NewString(),
		Title:      title,
		CategoryID: category,
	}
	if err := s.repo.CreateGlobalQuestion(ctx, globalQuestion); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(catalogCacheKey); err != nil {
		s.log.Warn("failed to invalidate catalog cache", slog.Any("err", err))
	}
	s.log.Info("created global question", slog.String("id", globalQuestion.ID))
	return &globalQuestion, nil
}

// ListForUser возвращает все персональные вопросы пользователя.
func (s *QuestionService) ListForUser(ctx context.Context, userUID string) ([]*models.Question, error) {
	return s.repo.ListQuestionsByUser(ctx, userUID)
}

// Answer применяет ответ и (опционально) новый статус к вопросу. Владелец
// проверяется по самой записи, а не по параметрам запроса. Текст ответа
// применяется всегда, статус — только если он передан; поля независимы.
func (s *QuestionService) Answer(ctx context.Context, ident models.Identity, id string, req models.DummyAnswer) (*models.Question, error) {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if !ident.CanAccess(question.UserUID) {
		return nil, ErrForbidden
	}

	answer := req.Answer
	question.Answer = &answer
	if req.NewStatus != nil {
		question.Status = *req.NewStatus
	}

	count, err := s.repo.UpdateQuestionAnswer(ctx, question.ID, question.Answer, question.Status)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrQuestionNotFound
	}

	s.log.Info("applied answer to question", slog.String("id", question.ID))
	return question, nil
}

// GetForOwner возвращает вопрос по ID с проверкой владельца.
func (s *QuestionService) GetForOwner(ctx context.Context, ident models.Identity, id string) (*models.Question, error) {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	if !ident.CanAccess(question.UserUID) {
		return nil, ErrForbidden
	}
	return question, nil
}
