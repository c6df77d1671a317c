package service

import (
	"context"

	"github.com/veloclub/clubhouse-api/internal/domain/entity"
	"github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/pkg/apperror"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

const secretPlaceholder = "********"

// SettingsService handles the key/value application settings store
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSetting returns a setting. Secret values come back masked; they are
// write-only through the API.
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*entity.Setting, error) {
	setting, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, apperror.NewNotFoundError("Setting")
	}
	return redacted(setting), nil
}

// SetSetting upserts a plain setting value. The cashier PIN has its own path
// and cannot be written here.
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) (*entity.Setting, error) {
	if key == "" {
		return nil, apperror.NewBadRequestError("Setting key is required")
	}
	if key == entity.SettingCashierPin {
		return nil, apperror.NewBadRequestError("The cashier PIN must be set through the PIN endpoint")
	}

	setting := &entity.Setting{Key: key, Value: value}
	if err := s.settingsRepo.Set(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// DeleteSetting removes a setting
func (s *SettingsService) DeleteSetting(ctx context.Context, key string) error {
	setting, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		return err
	}
	if setting == nil {
		return apperror.NewNotFoundError("Setting")
	}
	return s.settingsRepo.Delete(ctx, key)
}

// ListSettings returns all settings with secret values masked
func (s *SettingsService) ListSettings(ctx context.Context) ([]entity.Setting, error) {
	settings, err := s.settingsRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range settings {
		if settings[i].Secret {
			settings[i].Value = secretPlaceholder
		}
	}
	return settings, nil
}

// SetCashierPin stores the bcrypt hash of the shared cashier PIN. Only the
// hash is ever persisted.
func (s *SettingsService) SetCashierPin(ctx context.Context, pin string) error {
	if len(pin) < 4 {
		return apperror.NewBadRequestError("PIN must be at least 4 digits")
	}

	hash, err := utils.HashPassword(pin)
	if err != nil {
		return err
	}

	return s.settingsRepo.Set(ctx, &entity.Setting{
		Key:    entity.SettingCashierPin,
		Value:  hash,
		Secret: true,
	})
}

// VerifyCashierPin checks a PIN against the stored hash
func (s *SettingsService) VerifyCashierPin(ctx context.Context, pin string) error {
	setting, err := s.settingsRepo.Get(ctx, entity.SettingCashierPin)
	if err != nil {
		return err
	}
	if setting == nil || setting.Value == "" {
		return apperror.ErrPinNotConfigured
	}
	if !utils.CheckPasswordHash(pin, setting.Value) {
		return apperror.ErrInvalidPin
	}
	return nil
}

func redacted(setting *entity.Setting) *entity.Setting {
	if !setting.Secret {
		return setting
	}
	masked := *setting
	masked.Value = secretPlaceholder
	return &masked
}
