package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/rememory/internal/models"
)

// CreateGlobalQuestion вставляет новую запись каталога вопросов.
func (s *Storage) CreateGlobalQuestion(ctx context.Context, gq models.GlobalQuestion) error {
	const op = "storage.CreateGlobalQuestion"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO global_questions (id, title, category_id)
			  VALUES ($1, $2, $3)`
	_, err := s.DB.ExecContext(ctx, query, gq.ID, gq.Title, gq.CategoryID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetGlobalQuestion возвращает запись каталога по её ID.
func (s *Storage) GetGlobalQuestion(ctx context.Context, id string) (*models.GlobalQuestion, error) {
	const op = "storage.GetGlobalQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, category_id
			  FROM global_questions WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.GlobalQuestion
	if err := row.Scan(&result.ID, &result.Title, &result.CategoryID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListGlobalQuestions возвращает все записи каталога.
func (s *Storage) ListGlobalQuestions(ctx context.Context) ([]*models.GlobalQuestion, error) {
	const op = "storage.ListGlobalQuestions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, category_id
			  FROM global_questions
			  ORDER BY category_id, title`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.GlobalQuestion
	for rows.Next() {
		var item models.GlobalQuestion
		if err := rows.Scan(&item.ID, &item.Title, &item.CategoryID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
