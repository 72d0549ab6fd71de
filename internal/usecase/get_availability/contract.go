package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// TicketRepository интерфейс репозитория тикетов
type TicketRepository interface {
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
}

// ConfigRepository интерфейс репозитория конфигурации
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BusinessConfig, error)
}

// Calendar календарь точки обслуживания
type Calendar interface {
	ParseDate(s string) (time.Time, error)
	DayBounds(day time.Time) (time.Time, time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
