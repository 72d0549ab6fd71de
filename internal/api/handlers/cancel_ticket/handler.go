package cancel_ticket

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets"
)

const (
	msgInvalidTicketID    = "некорректный ID тикета"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "тикет не найден"
	msgAlreadyFinished    = "тикет уже обслужен или отменен"
	msgInvalidInput       = "некорректная причина отмены"
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

// Handle POST /api/v1/tickets/{ticketId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ticketID, err := handlers.PathInt64(r, "ticketId")
	if err != nil {
		h.logger.Warn("POST /tickets/{id}/cancel - Invalid ticket ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTicketID)
		return
	}

	var req CancelTicketRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /tickets/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Cancel(r.Context(), ticketID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, tickets.ErrTicketNotFound):
			h.logger.Warn("POST /tickets/{id}/cancel - Ticket not found: ticket_id=%d", ticketID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tickets.ErrTransitionNotAllowed):
			h.logger.Warn("POST /tickets/{id}/cancel - Ticket already finished: ticket_id=%d", ticketID)
			handlers.RespondConflict(w, msgAlreadyFinished)

		case errors.Is(err, tickets.ErrInvalidInput):
			h.logger.Warn("POST /tickets/{id}/cancel - Invalid input: ticket_id=%d, error=%v", ticketID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tickets/{id}/cancel - Failed to cancel ticket: ticket_id=%d, error=%v", ticketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tickets/{id}/cancel - Ticket cancelled: ticket_id=%d, changed=%t", ticketID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
