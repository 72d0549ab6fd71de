package create_ticket

import (
	"context"

	createTicket "github.com/m04kA/SMC-TurnosService/internal/usecase/create_ticket"
)

type CreateTicketUseCase interface {
	Execute(ctx context.Context, req *createTicket.Request) (*createTicket.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
