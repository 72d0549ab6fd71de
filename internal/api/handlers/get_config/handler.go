package get_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/config"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		// Если конфигурация не сохранена - возвращаем дефолтные значения
		if errors.Is(err, config.ErrConfigNotFound) {
			h.logger.Info("GET /config - Config not found, returning defaults")
			handlers.RespondJSON(w, http.StatusOK, GetDefaultConfigResponse())
			return
		}

		h.logger.Error("GET /config - Failed to get config: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /config - Config retrieved successfully: business=%q", result.BusinessName)
	handlers.RespondJSON(w, http.StatusOK, result)
}
