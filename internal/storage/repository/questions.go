package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/rememory/internal/models"
)

// CreateQuestion вставляет новый персональный вопрос пользователя.
func (s *Storage) CreateQuestion(ctx context.Context, q models.Question) error {
	const op = "storage.CreateQuestion"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO questions (id, origin, global_question_id, title, category_id,
			      user_uid, answer, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.DB.ExecContext(ctx, query,
		q.ID, string(q.Origin), q.GlobalQuestionID, q.Title, q.CategoryID,
		q.UserUID, q.Answer, q.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetQuestion возвращает персональный вопрос по его ID.
func (s *Storage) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	const op = "storage.GetQuestion"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, origin, global_question_id, title, category_id, user_uid, answer, status
			  FROM questions WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Question
	var origin string
	if err := row.Scan(&result.ID, &origin, &result.GlobalQuestionID, &result.Title,
		&result.CategoryID, &result.UserUID, &result.Answer, &result.Status); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.Origin = models.OriginKind(origin)
	return &result, nil
}

// UpdateQuestionAnswer обновляет ответ и статус вопроса, возвращает количество
// изменённых строк. Заголовок, категория и владелец не меняются.
func (s *Storage) UpdateQuestionAnswer(ctx context.Context, id string, answer *string, status string) (int, error) {
	const op = "storage.UpdateQuestionAnswer"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE questions
			  SET answer = $1, status = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, answer, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListQuestionsByUser возвращает все персональные вопросы пользователя
// в порядке создания.
func (s *Storage) ListQuestionsByUser(ctx context.Context, userUID string) ([]*models.Question, error) {
	const op = "storage.ListQuestionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, origin, global_question_id, title, category_id, user_uid, answer, status
			  FROM questions
			  WHERE user_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Question
	for rows.Next() {
		var item models.Question
		var origin string
		if err := rows.Scan(&item.ID, &origin, &item.GlobalQuestionID, &item.Title,
			&item.CategoryID, &item.UserUID, &item.Answer, &item.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Origin = models.OriginKind(origin)
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
