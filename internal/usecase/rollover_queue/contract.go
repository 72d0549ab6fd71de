package rollover_queue

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// TicketRepository интерфейс репозитория тикетов
type TicketRepository interface {
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
}

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	ExistsForTicket(ctx context.Context, ticketID int64, day time.Time) (bool, error)
}

// QueueService постановка тикета в очередь дня
type QueueService interface {
	Enqueue(ctx context.Context, ticketID int64, day time.Time) (*domain.QueueEntry, error)
}

// Calendar календарь точки обслуживания
type Calendar interface {
	ParseDateOrToday(s string) (time.Time, error)
	DayBounds(day time.Time) (time.Time, time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
