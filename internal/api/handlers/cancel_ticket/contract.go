package cancel_ticket

import (
	"context"

	"github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
)

type TicketService interface {
	Cancel(ctx context.Context, id int64, reason *string) (*models.UpdateStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
