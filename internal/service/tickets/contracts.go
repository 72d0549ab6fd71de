package tickets

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// TicketRepository интерфейс репозитория тикетов
type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
	CountByState(ctx context.Context, from, to time.Time) (map[domain.TicketState]int, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
}

// Calendar календарь точки обслуживания
type Calendar interface {
	Now() time.Time
	ParseDate(s string) (time.Time, error)
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
