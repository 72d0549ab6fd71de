package update_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/config"
	"github.com/m04kA/SMC-TurnosService/internal/service/config/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные конфигурации"
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

// Handle PUT /api/v1/config
// Частичное обновление: поля, отсутствующие в теле, не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, config.ErrInvalidInput) {
			h.logger.Warn("PUT /config - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("PUT /config - Failed to update config: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /config - Config updated successfully: open=%s, close=%s, interval=%d",
		result.OpenTime, result.CloseTime, result.SlotIntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
