package set_service_active

import (
	"context"

	"github.com/m04kA/SMC-TurnosService/internal/service/catalog/models"
)

type CatalogService interface {
	SetActive(ctx context.Context, id int64, req *models.SetActiveRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
