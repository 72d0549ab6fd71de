package update_ticket_state

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
)

const (
	msgInvalidTicketID    = "некорректный ID тикета"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "тикет не найден"
	msgInvalidState       = "неизвестное состояние тикета"
	msgTransition         = "переход из текущего состояния запрещен"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle PUT /api/v1/tickets/{ticketId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ticketID, err := handlers.PathInt64(r, "ticketId")
	if err != nil {
		h.logger.Warn("PUT /tickets/{id} - Invalid ticket ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTicketID)
		return
	}

	var req models.UpdateStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tickets/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateState(r.Context(), ticketID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tickets.ErrTicketNotFound):
			h.logger.Warn("PUT /tickets/{id} - Ticket not found: ticket_id=%d", ticketID)
			handlers.RespondNotFound(w, msgNotFound)

		// ErrTransitionNotAllowed оборачивает ErrInvalidState, проверяется первым
		case errors.Is(err, tickets.ErrTransitionNotAllowed):
			h.logger.Warn("PUT /tickets/{id} - Transition not allowed: ticket_id=%d, error=%v", ticketID, err)
			handlers.RespondConflict(w, msgTransition)

		case errors.Is(err, tickets.ErrInvalidState):
			h.logger.Warn("PUT /tickets/{id} - Invalid state: ticket_id=%d, state=%q", ticketID, req.State)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, tickets.ErrInvalidInput):
			h.logger.Warn("PUT /tickets/{id} - Invalid input: ticket_id=%d, error=%v", ticketID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /tickets/{id} - Failed to update ticket: ticket_id=%d, error=%v", ticketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tickets/{id} - Ticket updated successfully: ticket_id=%d, state=%s, changed=%t",
		ticketID, result.Ticket.State, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
