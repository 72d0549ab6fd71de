package call_ticket

import (
	"context"

	callTicket "github.com/m04kA/SMC-TurnosService/internal/usecase/call_ticket"
)

type CallTicketUseCase interface {
	Execute(ctx context.Context, ticketID int64) (*callTicket.Response, error)
	ExecuteNext(ctx context.Context) (*callTicket.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
