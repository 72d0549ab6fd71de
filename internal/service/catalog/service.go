package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-TurnosService/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List услуги по имени; выключенные только при includeInactive
func (s *Service) List(ctx context.Context, includeInactive bool) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Create добавляет услугу в каталог, имя уникально
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	name := strings.TrimSpace(req.Name)
	s.logger.Info("Create: creating service name=%q", name)

	if name == "" || len(name) > domain.MaxServiceNameLength {
		s.logger.Warn("Create: invalid name=%q", req.Name)
		return nil, fmt.Errorf("%w: name must be between 1 and %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if req.EstimatedMinutes <= 0 || req.EstimatedMinutes > domain.MaxSlotIntervalMinutes {
		s.logger.Warn("Create: invalid estimatedMinutes=%d", req.EstimatedMinutes)
		return nil, fmt.Errorf("%w: estimatedMinutes must be between 1 and %d", ErrInvalidInput, domain.MaxSlotIntervalMinutes)
	}

	created, err := s.catalogRepo.Create(ctx, &domain.Service{
		Name:             name,
		Description:      req.Description,
		EstimatedMinutes: req.EstimatedMinutes,
		Active:           true,
		CreatedAt:        s.timeProvider.Now(),
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceAlreadyExists) {
			s.logger.Warn("Create: service name=%q already exists", name)
			return nil, ErrServiceAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d created", created.ID)
	return models.FromDomainService(created), nil
}

// SetActive включает или выключает услугу
func (s *Service) SetActive(ctx context.Context, id int64, req *models.SetActiveRequest) (*models.ServiceResponse, error) {
	var updated *domain.Service
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.catalogRepo.SetActive(txCtx, id, req.Active); err != nil {
			return err
		}
		var err error
		updated, err = s.catalogRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("SetActive: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("SetActive: service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: service id=%d, active=%t", id, req.Active)
	return models.FromDomainService(updated), nil
}

// SeedDefaults создает каталог по умолчанию, если он пуст.
// Возвращает количество созданных услуг.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.catalogRepo.List(txCtx, true)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		now := s.timeProvider.Now()
		for _, def := range domain.DefaultServices {
			svc := def
			svc.CreatedAt = now
			if _, err := s.catalogRepo.Create(txCtx, &svc); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SeedDefaults: %v", err)
		return 0, fmt.Errorf("%w: SeedDefaults - %v", ErrInternal, err)
	}

	s.logger.Info("SeedDefaults: created %d services", created)
	return created, nil
}
