package get_statistics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service TicketService
	logger  Logger
}

func NewHandler(service TicketService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/statistics
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.service.Statistics(r.Context(), date)
	if err != nil {
		if errors.Is(err, tickets.ErrInvalidDate) {
			h.logger.Warn("GET /statistics - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /statistics - Failed to get statistics: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /statistics - Statistics retrieved: date=%s, total=%d", result.Date, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
