package get_next_pending

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

// Handle GET /api/v1/queue/next
// Query params: date (опционально). Пустая очередь - 204 без тела.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	entry, err := h.service.NextPending(r.Context(), date)
	if err != nil {
		if errors.Is(err, queue.ErrInvalidDate) {
			h.logger.Warn("GET /queue/next - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /queue/next - Failed to get next pending: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	if entry == nil {
		h.logger.Info("GET /queue/next - No pending tickets: date=%s", date)
		handlers.RespondNoContent(w)
		return
	}

	h.logger.Info("GET /queue/next - Next pending: ticket_id=%d, position=%d", entry.TicketID, entry.Position)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
