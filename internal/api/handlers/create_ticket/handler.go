package create_ticket

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	createTicket "github.com/m04kA/SMC-TurnosService/internal/usecase/create_ticket"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "не заполнены обязательные поля или указан неизвестный канал"
	msgInvalidAppointment = "некорректное время приема"
)

type Handler struct {
	useCase CreateTicketUseCase
	logger  Logger
}

func NewHandler(useCase CreateTicketUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tickets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tickets - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createTicket.ErrInvalidAppointment):
			h.logger.Warn("POST /tickets - Invalid appointment: appointment_at=%q", req.AppointmentAt)
			handlers.RespondBadRequest(w, msgInvalidAppointment)

		case errors.Is(err, createTicket.ErrInvalidInput):
			h.logger.Warn("POST /tickets - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createTicket.ErrConflict):
			h.logger.Warn("POST /tickets - Creation conflict after retries: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /tickets - Failed to create ticket: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tickets - Ticket created successfully: ticket_id=%d, code=%s, queued=%t",
		result.Ticket.ID, result.Ticket.Code, result.QueuePosition != nil)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
