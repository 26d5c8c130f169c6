// Package services содержит бизнес-логику почтовых реквизитов пользователя.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/rememory/internal/models"
)

// Ошибки бизнес-логики почтовых реквизитов.
var (
	ErrSettingsNotFound = errors.New("address settings not found")
	ErrForbidden        = errors.New("access denied")
)

// SettingsRepository определяет методы хранилища почтовых реквизитов.
type SettingsRepository interface {
	GetAddressSettings(ctx context.Context, userUID string) (*models.AddressSettings, error)
	UpsertAddressSettings(ctx context.Context, settings models.AddressSettings) error
}

// SettingsService реализует чтение и сохранение почтовых реквизитов.
type SettingsService struct {
	repo SettingsRepository
}

// NewSettingsService создает новый экземпляр SettingsService.
func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get возвращает почтовые реквизиты пользователя userUID.
// Доступ разрешён владельцу и администратору.
func (s *SettingsService) Get(ctx context.Context, ident models.Identity, userUID string) (*models.AddressSettings, error) {
	const op = "settings.Get"

	if !ident.CanAccess(userUID) {
		return nil, ErrForbidden
	}
	settings, err := s.repo.GetAddressSettings(ctx, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

// Upsert сохраняет почтовые реквизиты пользователя, заменяя предыдущие.
func (s *SettingsService) Upsert(ctx context.Context, ident models.Identity, req models.DummyAddressSettings) (*models.AddressSettings, error) {
	const op = "settings.Upsert"

	userUID := req.UserID
	if userUID == "" {
		userUID = ident.UserUID
	}
	if !ident.CanAccess(userUID) {
		return nil, ErrForbidden
	}

	settings := models.AddressSettings{
		UserUID:    userUID,
		Country:    req.Country,
		City:       req.City,
		Street:     req.Street,
		House:      req.House,
		Apartment:  req.Apartment,
		PostalCode: req.PostalCode,
	}
	if err := s.repo.UpsertAddressSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &settings, nil
}
