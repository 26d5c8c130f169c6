package models

// Category группирует вопросы каталога и задает порядок разделов книги.
// После первого использования не изменяется.
type Category struct {
	ID   string `json:"id"`   // Уникальный идентификатор категории
	Name string `json:"name"` // Отображаемое название
}
