package noshow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// TicketRepository интерфейс репозитория тикетов
type TicketRepository interface {
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
}

// ConfigRepository интерфейс репозитория конфигурации
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BusinessConfig, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счетчики
type Metrics interface {
	NoShow(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
