package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/catalog"
)

// CatalogRepository каталог услуг в памяти
type CatalogRepository struct {
	s *Store
}

// Create добавляет услугу, имя уникально
func (r *CatalogRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.services {
		if existing.Name == service.Name {
			return nil, fmt.Errorf("%w: name=%s", catalogRepo.ErrServiceAlreadyExists, service.Name)
		}
	}

	r.s.lastServiceID++
	service.ID = r.s.lastServiceID
	stored := *service
	stored.Description = clonePtr(service.Description)
	r.s.services[service.ID] = stored

	return service, nil
}

// GetByID получает услугу по ID
func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	defer r.s.lock(ctx)()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &svc, nil
}

// List услуги по имени
func (r *CatalogRepository) List(ctx context.Context, includeInactive bool) ([]*domain.Service, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		if !includeInactive && !svc.Active {
			continue
		}
		svc := svc
		result = append(result, &svc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SetActive включает или выключает услугу
func (r *CatalogRepository) SetActive(ctx context.Context, id int64, active bool) error {
	defer r.s.lock(ctx)()

	svc, ok := r.s.services[id]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	svc.Active = active
	r.s.services[id] = svc
	return nil
}
