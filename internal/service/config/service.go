package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	configRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/config"
	"github.com/m04kA/SMC-TurnosService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией точки обслуживания
type Service struct {
	configRepo   ConfigRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		configRepo:   configRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Get возвращает текущую конфигурацию
func (s *Service) Get(ctx context.Context) (*models.ConfigResponse, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: config not found")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update частично обновляет конфигурацию.
// Если конфигурации нет, она создается со значениями по умолчанию и затем обновляется.
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating business config")

	update := req.ToDomainUpdate()
	if update.BusinessName != nil {
		name := strings.TrimSpace(*update.BusinessName)
		update.BusinessName = &name
	}

	var saved *domain.BusinessConfig
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Текущая конфигурация под блокировкой строки
		cfg, err := s.configRepo.Get(txCtx)
		if err != nil {
			if !errors.Is(err, configRepo.ErrConfigNotFound) {
				return fmt.Errorf("%w: Update - get config: %v", ErrInternal, err)
			}
			s.logger.Info("Update: config not found, starting from defaults")
			cfg = domain.DefaultBusinessConfig()
		}

		// 2. Накладываем изменения и проверяем результат целиком
		update.Apply(cfg)
		if err := validateConfig(cfg); err != nil {
			return err
		}
		cfg.UpdatedAt = s.timeProvider.Now()

		// 3. Сохраняем
		saved, err = s.configRepo.Save(txCtx, cfg)
		if err != nil {
			return fmt.Errorf("%w: Update - save config: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			s.logger.Warn("Update: validation failed: %v", err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Update: %v", err)
			return nil, err
		default:
			s.logger.Error("Update: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: Update - transaction: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: config saved, hours=%s-%s, interval=%d",
		saved.OpenTime, saved.CloseTime, saved.SlotIntervalMinutes)
	return models.FromDomainConfig(saved), nil
}

// EnsureDefaults создает конфигурацию по умолчанию, если ее нет.
// Возвращает true, если конфигурация была создана.
func (s *Service) EnsureDefaults(ctx context.Context) (bool, error) {
	created := false
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.configRepo.Get(txCtx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: EnsureDefaults - get config: %v", ErrInternal, err)
		}

		cfg := domain.DefaultBusinessConfig()
		cfg.UpdatedAt = s.timeProvider.Now()
		if _, err := s.configRepo.Save(txCtx, cfg); err != nil {
			return fmt.Errorf("%w: EnsureDefaults - save config: %v", ErrInternal, err)
		}
		created = true
		return nil
	})
	if err != nil {
		s.logger.Error("EnsureDefaults: %v", err)
		if errors.Is(err, ErrInternal) {
			return false, err
		}
		return false, fmt.Errorf("%w: EnsureDefaults - transaction: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("EnsureDefaults: default config created")
	}
	return created, nil
}

// validateConfig проверяет конфигурацию после применения изменений.
// open >= close допустимо: такой день просто не имеет слотов.
func validateConfig(cfg *domain.BusinessConfig) error {
	if cfg.BusinessName == "" || len(cfg.BusinessName) > domain.MaxBusinessNameLength {
		return fmt.Errorf("%w: businessName must be between 1 and %d characters",
			ErrInvalidInput, domain.MaxBusinessNameLength)
	}

	if err := cfg.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
	}
	if err := cfg.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
	}

	if cfg.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || cfg.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if cfg.VoiceVolume < 0 || cfg.VoiceVolume > 1 {
		return fmt.Errorf("%w: voiceVolume must be between 0 and 1", ErrInvalidInput)
	}

	if cfg.NoShowWaitMinutes < 0 || cfg.NoShowWaitMinutes > domain.MaxNoShowWaitMinutes {
		return fmt.Errorf("%w: noShowWaitMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxNoShowWaitMinutes)
	}

	return nil
}
