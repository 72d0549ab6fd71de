package qr_history

import (
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
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

// Handle GET /api/v1/qr/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.QRHistory(r.Context())
	if err != nil {
		h.logger.Error("GET /qr/history - Failed to get QR history: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /qr/history - QR history retrieved: count=%d", len(result.Tickets))
	handlers.RespondJSON(w, http.StatusOK, result)
}
