package list_services

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Query params: includeInactive (опционально, по умолчанию false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /services - Invalid includeInactive=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		includeInactive = v
	}

	result, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
