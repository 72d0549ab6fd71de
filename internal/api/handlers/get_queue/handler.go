package get_queue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/queue"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service QueueService
	logger  Logger
}

func NewHandler(service QueueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/queue
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.service.ListForDay(r.Context(), date)
	if err != nil {
		if errors.Is(err, queue.ErrInvalidDate) {
			h.logger.Warn("GET /queue - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /queue - Failed to get queue: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /queue - Queue retrieved: date=%s, entries=%d", result.Date, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
