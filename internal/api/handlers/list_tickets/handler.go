package list_tickets

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidState   = "неизвестное состояние тикета"
	msgInvalidChannel = "неизвестный канал регистрации"
)

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

// Handle GET /api/v1/tickets
// Query params: date, state, channel (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListTicketsRequest{
		Date:    handlers.QueryString(r, "date"),
		State:   handlers.QueryString(r, "state"),
		Channel: handlers.QueryString(r, "channel"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, tickets.ErrInvalidDate):
			h.logger.Warn("GET /tickets - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, tickets.ErrInvalidState):
			h.logger.Warn("GET /tickets - Invalid state: %v", err)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, tickets.ErrInvalidInput):
			h.logger.Warn("GET /tickets - Invalid channel: %v", err)
			handlers.RespondBadRequest(w, msgInvalidChannel)

		default:
			h.logger.Error("GET /tickets - Failed to list tickets: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tickets - Tickets retrieved successfully: count=%d", len(result.Tickets))
	handlers.RespondJSON(w, http.StatusOK, result)
}
