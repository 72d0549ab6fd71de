package get_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

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

// Handle GET /api/v1/appointments/{date}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	result, err := h.service.ListAppointments(r.Context(), date)
	if err != nil {
		if errors.Is(err, tickets.ErrInvalidDate) {
			h.logger.Warn("GET /appointments/{date} - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /appointments/{date} - Failed to list appointments: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/{date} - Appointments retrieved: date=%s, count=%d", date, len(result.Tickets))
	handlers.RespondJSON(w, http.StatusOK, result)
}
