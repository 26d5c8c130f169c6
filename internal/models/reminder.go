package models

// ReminderInfo данные для письма-напоминания о неотвеченных вопросах.
// Сериализуется в JSON при публикации в очередь уведомлений.
type ReminderInfo struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	UnansweredCount int    `json:"unanswered_count"`
}
