package repository

import (
	"context"

	"github.com/veloclub/clubhouse-api/internal/domain/entity"
)

// SettingsRepository defines the interface for application settings data access
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	// Set upserts a setting value
	Set(ctx context.Context, setting *entity.Setting) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]entity.Setting, error)
}
