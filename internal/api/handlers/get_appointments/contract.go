package get_appointments

import (
	"context"

	"github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
)

type TicketService interface {
	ListAppointments(ctx context.Context, date string) (*models.TicketListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
