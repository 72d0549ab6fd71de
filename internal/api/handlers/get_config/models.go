package get_config

import (
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/internal/service/config/models"
)

// GetDefaultConfigResponse конфигурация по умолчанию, пока оператор ее не сохранил
func GetDefaultConfigResponse() *models.ConfigResponse {
	return models.FromDomainConfig(domain.DefaultBusinessConfig())
}
