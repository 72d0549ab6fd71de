package memory

import (
	"context"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	configRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/config"
)

// ConfigRepository конфигурация в памяти
type ConfigRepository struct {
	s *Store
}

// Get получает конфигурацию
func (r *ConfigRepository) Get(ctx context.Context) (*domain.BusinessConfig, error) {
	defer r.s.lock(ctx)()

	if r.s.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	cfg := *r.s.config
	cfg.LogoURL = clonePtr(r.s.config.LogoURL)
	return &cfg, nil
}

// Save создает или перезаписывает конфигурацию
func (r *ConfigRepository) Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	defer r.s.lock(ctx)()

	stored := *cfg
	stored.LogoURL = clonePtr(cfg.LogoURL)
	r.s.config = &stored
	return cfg, nil
}
