// Package smtp предоставляет транспорт для отправки почты: напоминаний
// о неотвеченных вопросах и заявок оператору печати.
package smtp

import "io"

// Client описывает минимальный набор операций SMTP-сессии.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface устанавливает SMTP-соединение и сообщает адрес отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
