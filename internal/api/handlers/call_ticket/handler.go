package call_ticket

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	callTicket "github.com/m04kA/SMC-TurnosService/internal/usecase/call_ticket"
)

const (
	msgInvalidTicketID = "некорректный ID тикета"
	msgNotFound        = "тикет не найден"
	msgInvalidState    = "тикет уже обслужен или отменен"
)

type Handler struct {
	useCase CallTicketUseCase
	logger  Logger
}

func NewHandler(useCase CallTicketUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue/call/{ticketId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ticketID, err := handlers.PathInt64(r, "ticketId")
	if err != nil {
		h.logger.Warn("POST /queue/call/{id} - Invalid ticket ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTicketID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ticketID)
	if err != nil {
		switch {
		case errors.Is(err, callTicket.ErrTicketNotFound):
			h.logger.Warn("POST /queue/call/{id} - Ticket not found: ticket_id=%d", ticketID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, callTicket.ErrInvalidState):
			h.logger.Warn("POST /queue/call/{id} - Invalid state: ticket_id=%d, error=%v", ticketID, err)
			handlers.RespondConflict(w, msgInvalidState)

		default:
			h.logger.Error("POST /queue/call/{id} - Failed to call ticket: ticket_id=%d, error=%v", ticketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/call/{id} - Ticket called: ticket_id=%d, code=%s, recall=%t",
		ticketID, result.Ticket.Code, result.Recall)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleNext POST /api/v1/queue/call-next
// Пустая очередь - 204 без тела
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.ExecuteNext(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, callTicket.ErrQueueEmpty):
			h.logger.Info("POST /queue/call-next - Queue is empty")
			handlers.RespondNoContent(w)

		case errors.Is(err, callTicket.ErrInvalidState):
			// Тикет успел смениться между выборкой и вызовом
			h.logger.Warn("POST /queue/call-next - Invalid state: %v", err)
			handlers.RespondConflict(w, msgInvalidState)

		default:
			h.logger.Error("POST /queue/call-next - Failed to call next ticket: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/call-next - Ticket called: ticket_id=%d, code=%s",
		result.Ticket.ID, result.Ticket.Code)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
