package models

import (
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
}

// SetActiveRequest запрос на включение или выключение услуги
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		EstimatedMinutes: s.EstimatedMinutes,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, s := range services {
		if serviceResp := FromDomainService(s); serviceResp != nil {
			resp.Services = append(resp.Services, *serviceResp)
		}
	}

	return resp
}
