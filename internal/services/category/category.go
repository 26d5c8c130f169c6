// Package services содержит бизнес-логику чтения категорий вопросов.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rememory/internal/models"
)

const categoriesCacheKey = "catalog:categories"

// ErrCategoryNotFound категория с таким ID отсутствует.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository определяет методы для чтения категорий из хранилища.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// CategoryService реализует чтение категорий с кешированием списка.
type CategoryService struct {
	repo  CategoryRepository
	cache Cache
	log   *slog.Logger
}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService(repo CategoryRepository, cache Cache, log *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает все категории. Список меняется редко, поэтому кешируется.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	const op = "category.List"

	var cached []*models.Category
	found, err := s.cache.Get(categoriesCacheKey, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", "key", categoriesCacheKey, "error", err)
	}
	if found {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(categoriesCacheKey, categories, time.Hour); err != nil {
		s.log.Warn("failed to cache categories", "error", err)
	}
	return categories, nil
}

// Get возвращает категорию по ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	const op = "category.Get"

	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}
