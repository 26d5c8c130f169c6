package models

import "strings"

// AddressSettings почтовые реквизиты пользователя. Обязательное условие
// для заказа печатной книги: без заполненного адреса компиляция отклоняется.
type AddressSettings struct {
	UserUID    string `json:"user_uid"` // Владелец настроек
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	House      string `json:"house"`
	Apartment  string `json:"apartment"`
	PostalCode string `json:"postal_code"`
}

// DummyAddressSettings используется для приёма данных запроса на обновление адреса.
type DummyAddressSettings struct {
	UserID     string `json:"user_id" validate:"omitempty,uuid"`
	Country    string `json:"country" validate:"required"`
	City       string `json:"city" validate:"required"`
	Street     string `json:"street" validate:"required"`
	House      string `json:"house" validate:"required"`
	Apartment  string `json:"apartment"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// ToHTML возвращает адрес одной строкой для вставки в HTML-письмо оператору.
func (a AddressSettings) ToHTML() string {
	parts := []string{a.PostalCode, a.Country, a.City, a.Street, a.House}
	if a.Apartment != "" {
		parts = append(parts, "кв. "+a.Apartment)
	}
	return strings.Join(parts, ", ")
}
