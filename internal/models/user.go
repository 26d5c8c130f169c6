// Package models содержит доменные структуры приложения: пользователей,
// вопросы, категории и настройки адреса. Структуры используются
// в бизнес‑логике и при работе с хранилищем.
package models

// Роли пользователей системы.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string // Уникальный идентификатор пользователя
	Email        string // Электронная почта
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя
	Role         string // Роль пользователя, admin или user
}
