// Package services реализует планировщик напоминаний: периодически
// находит пользователей с неотвеченными вопросами и публикует задания
// на отправку писем в очередь.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/rememory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/rememory/internal/lib/sl"
	"github.com/magabrotheeeer/rememory/internal/models"
)

type UserRepository interface {
	FindUsersWithUnansweredQuestions(ctx context.Context) ([]*models.ReminderInfo, error)
}

type SchedulerService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo UserRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindUsersToRemind раз в сутки ищет пользователей с неотвеченными
// вопросами и публикует напоминание для каждого из них.
func (s *SchedulerService) FindUsersToRemind(ctx context.Context, channel *amqp.Channel) {
	s.runFindUsersToRemind(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFindUsersToRemind(ctx, channel)
		}
	}
}

func (s *SchedulerService) runFindUsersToRemind(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find users with unanswered questions")
	infos, err := s.repo.FindUsersWithUnansweredQuestions(ctx)
	if err != nil {
		s.log.Error("failed to find users", sl.Err(err))
		return
	}
	if len(infos) == 0 {
		s.log.Info("no users with unanswered questions found")
		return
	}
	s.log.Info("found users with unanswered questions", "count", len(infos))
	for _, info := range infos {
		err = rabbitmq.PublishMessage(channel, "notifications", "reminder", info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
