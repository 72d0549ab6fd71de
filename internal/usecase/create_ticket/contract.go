package create_ticket

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// TicketRepository интерфейс репозитория тикетов
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
}

// CodeGenerator выдача кодов DDMM-NNN
type CodeGenerator interface {
	NextCode(ctx context.Context, creationDate time.Time) (string, error)
}

// QueueService постановка тикета в очередь дня
type QueueService interface {
	Enqueue(ctx context.Context, ticketID int64, day time.Time) (*domain.QueueEntry, error)
}

// Calendar календарь точки обслуживания
type Calendar interface {
	Now() time.Time
	SameDay(a, b time.Time) bool
	ParseAppointment(s string) (time.Time, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счетчики
type Metrics interface {
	TicketCreated(channel string, enqueued bool)
	ConflictRetry(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
