package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/rememory/internal/models"
)

// GetAddressSettings возвращает почтовые реквизиты пользователя.
func (s *Storage) GetAddressSettings(ctx context.Context, userUID string) (*models.AddressSettings, error) {
	const op = "storage.GetAddressSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, country, city, street, house, apartment, postal_code
			  FROM address_settings WHERE user_uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var result models.AddressSettings
	if err := row.Scan(&result.UserUID, &result.Country, &result.City, &result.Street,
		&result.House, &result.Apartment, &result.PostalCode); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpsertAddressSettings сохраняет почтовые реквизиты пользователя,
// заменяя предыдущие при наличии.
func (s *Storage) UpsertAddressSettings(ctx context.Context, settings models.AddressSettings) error {
	const op = "storage.UpsertAddressSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO address_settings (user_uid, country, city, street, house, apartment, postal_code)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET country = $2, city = $3, street = $4, house = $5, apartment = $6, postal_code = $7`
	_, err := s.DB.ExecContext(ctx, query,
		settings.UserUID, settings.Country, settings.City, settings.Street,
		settings.House, settings.Apartment, settings.PostalCode)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
