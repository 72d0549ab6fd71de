package call_ticket

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// TicketRepository интерфейс репозитория тикетов
type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
}

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	NextPending(ctx context.Context, day time.Time) (*domain.QueueEntry, error)
}

// ConfigRepository интерфейс репозитория конфигурации
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BusinessConfig, error)
}

// Publisher доставка объявлений на табло
type Publisher interface {
	Publish(ctx context.Context, announcement domain.Announcement) error
}

// Calendar календарь точки обслуживания
type Calendar interface {
	Now() time.Time
	Today() time.Time
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счетчики
type Metrics interface {
	TicketCalled(recall bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
