package validate_qr

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQR          = "QR код не распознан"
	msgNotFound           = "тикет по QR коду не найден"
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

// Handle POST /api/v1/qr/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateQRRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /qr/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ValidateQR(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, tickets.ErrInvalidQRPayload):
			h.logger.Warn("POST /qr/validate - Invalid QR payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQR)

		case errors.Is(err, tickets.ErrTicketNotFound):
			h.logger.Warn("POST /qr/validate - Ticket not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /qr/validate - Failed to validate QR: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /qr/validate - QR validated: ticket_id=%d, code=%s", result.Ticket.ID, result.Ticket.Code)
	handlers.RespondJSON(w, http.StatusOK, result)
}
