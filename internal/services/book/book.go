// Package services содержит бизнес-логику компиляции книги: сбор отвеченных
// вопросов пользователя, конвертацию в PDF и отправку заявки оператору печати.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/magabrotheeeer/rememory/internal/models"
)

// DefaultOperatorEmail ящик оператора печати по умолчанию.
const DefaultOperatorEmail = "rememory.notifications@yandex.ru"

const attachmentName = "answers.pdf"

// Ошибки компиляции книги.
var (
	// ErrNoAddressSettings почтовые реквизиты пользователя не заполнены.
	ErrNoAddressSettings = errors.New("address settings are not filled in")
	// ErrNoAnsweredQuestions у пользователя нет ни одного отвеченного вопроса.
	ErrNoAnsweredQuestions = errors.New("no answered questions to compile")
)

// BookRepository определяет методы хранилища, нужные для компиляции книги.
type BookRepository interface {
	// ListQuestionsByUser возвращает все вопросы пользователя в порядке создания.
	ListQuestionsByUser(ctx context.Context, userUID string) ([]*models.Question, error)
	// GetAddressSettings возвращает почтовые реквизиты пользователя.
	GetAddressSettings(ctx context.Context, userUID string) (*models.AddressSettings, error)
	// GetUserByUID возвращает пользователя по уникальному идентификатору.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// Renderer конвертирует HTML-разметку в PDF-документ.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Sender отправляет заявку на печать книги с вложением.
type Sender interface {
	SendBookOrder(to, htmlBody string, attachment []byte, filename string) error
}

// Book результат компиляции: PDF-документ и HTML-сообщение с адресом пользователя.
type Book struct {
	Document []byte
	Message  string
}

// BookService реализует компиляцию и отправку книги.
type BookService struct {
	repo          BookRepository
	renderer      Renderer
	sender        Sender
	operatorEmail string
	log           *slog.Logger
}

// NewBookService создает новый экземпляр BookService. Пустой operatorEmail
// означает использование ящика по умолчанию.
func NewBookService(repo BookRepository, renderer Renderer, sender Sender, operatorEmail string, log *slog.Logger) *BookService {
	return &BookService{
		repo:          repo,
		renderer:      renderer,
		sender:        sender,
		operatorEmail: operatorEmail,
		log:           log,
	}
}

// Compile собирает отвеченные вопросы пользователя в PDF-документ.
// Порядок шагов: проверка почтовых реквизитов, выборка вопросов, фильтрация
// по статусу answered, устойчивая сортировка по категории, рендеринг.
// Ничего не отправляет — за отправку отвечает Dispatch.
func (s *BookService) Compile(ctx context.Context, userUID string) (*Book, error) {
	const op = "book.Compile"

	settings, err := s.repo.GetAddressSettings(ctx, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoAddressSettings
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	questions, err := s.repo.ListQuestionsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	answered := make([]*models.Question, 0, len(questions))
	for _, q := range questions {
		if q.Status == models.StatusAnswered {
			answered = append(answered, q)
		}
	}
	if len(answered) < 1 {
		return nil, ErrNoAnsweredQuestions
	}

	// Группировка разделов книги: вопросы одной категории идут подряд,
	// внутри категории сохраняется порядок создания.
	sort.SliceStable(answered, func(i, j int) bool {
		return answered[i].CategoryID < answered[j].CategoryID
	})

	fragments := make([]string, 0, len(answered))
	for _, q := range answered {
		var answer string
		if q.Answer != nil {
			answer = *q.Answer
		}
		fragments = append(fragments, fmt.Sprintf("<p><h1>%s</h1>%s</p>", q.Title, answer))
	}
	body := `<meta charset="UTF-8" />` + strings.Join(fragments, " ")

	document, err := s.renderer.Render(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("%s: render failed: %w", op, err)
	}

	message := fmt.Sprintf("<p>Адрес пользователя %s:</p><p>%s</p>", user.Email, settings.ToHTML())

	s.log.Info("compiled book",
		slog.String("user_uid", userUID),
		slog.Int("answered_questions", len(answered)),
		slog.Int("document_bytes", len(document)))
	return &Book{Document: document, Message: message}, nil
}

// Dispatch отправляет собранную книгу на ящик оператора печати.
func (s *BookService) Dispatch(_ context.Context, book *Book) error {
	const op = "book.Dispatch"

	to := s.operatorEmail
	if to == "" {
		to = DefaultOperatorEmail
	}
	if err := s.sender.SendBookOrder(to, book.Message, book.Document, attachmentName); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("book order dispatched", slog.String("to", to))
	return nil
}

// CompileAndSend компилирует книгу и синхронно отправляет её оператору.
// Вызов блокируется на всё время рендеринга и отправки письма.
func (s *BookService) CompileAndSend(ctx context.Context, userUID string) error {
	book, err := s.Compile(ctx, userUID)
	if err != nil {
		return err
	}
	return s.Dispatch(ctx, book)
}
