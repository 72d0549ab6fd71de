package get_ticket

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets"
)

const (
	msgInvalidTicketID = "некорректный ID тикета"
	msgNotFound        = "тикет не найден"
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

// Handle GET /api/v1/tickets/{ticketId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ticketID, err := handlers.PathInt64(r, "ticketId")
	if err != nil {
		h.logger.Warn("GET /tickets/{id} - Invalid ticket ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTicketID)
		return
	}

	ticket, err := h.service.GetByID(r.Context(), ticketID)
	if err != nil {
		if errors.Is(err, tickets.ErrTicketNotFound) {
			h.logger.Warn("GET /tickets/{id} - Ticket not found: ticket_id=%d", ticketID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /tickets/{id} - Failed to get ticket: ticket_id=%d, error=%v", ticketID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tickets/{id} - Ticket retrieved successfully: ticket_id=%d", ticketID)
	handlers.RespondJSON(w, http.StatusOK, ticket)
}
