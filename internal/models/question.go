package models

// OriginKind указывает происхождение персонального вопроса:
// скопирован из общего каталога или создан пользователем вручную.
type OriginKind string

// Варианты происхождения вопроса.
const (
	OriginCatalog OriginKind = "catalog"
	OriginCustom  OriginKind = "custom"
)

// Статусы персонального вопроса.
const (
	StatusUnanswered = "unanswered"
	StatusAnswered   = "answered"
)

// GlobalQuestion запись общего каталога вопросов. Создается только
// администратором и никогда не изменяется пользователями.
type GlobalQuestion struct {
	ID         string `json:"id"`          // Уникальный идентификатор записи каталога
	Title      string `json:"title"`       // Текст вопроса
	CategoryID string `json:"category_id"` // Категория вопроса
}

// Question персональный вопрос пользователя. Заголовок и категория
// копируются из каталога в момент создания и дальше от каталога не зависят.
// Владелец после создания не меняется.
type Question struct {
	ID               string     `json:"id"`                           // Уникальный идентификатор вопроса
	Origin           OriginKind `json:"origin"`                       // Происхождение: catalog или custom
	GlobalQuestionID *string    `json:"global_question_id,omitempty"` // Исходная запись каталога, заполнен только при Origin == catalog
	Title            string     `json:"title"`                        // Текст вопроса, зафиксированный при создании
	CategoryID       string     `json:"category_id"`                  // Категория, зафиксированная при создании
	UserUID          string     `json:"user_uid"`                     // Владелец вопроса
	Answer           *string    `json:"answer,omitempty"`             // Текст ответа, nil пока ответа нет
	Status           string     `json:"status"`                       // unanswered или answered
}

// DummyAnswer используется для приёма данных PATCH-запроса на ответ.
// Текст ответа применяется всегда, статус — только если он передан.
type DummyAnswer struct {
	Answer    string  `json:"answer"`
	NewStatus *string `json:"new_status,omitempty" validate:"omitempty,oneof=unanswered answered"`
}

// DummyGlobalQuestion используется для приёма данных запроса на создание
// записи каталога. Категория опциональна, при отсутствии берется категория
// по умолчанию.
type DummyGlobalQuestion struct {
	Title      string  `json:"title" validate:"required"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

// DummyQuestion используется для приёма данных запроса на создание
// собственного вопроса пользователя.
type DummyQuestion struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Title  string `json:"title" validate:"required"`
}
