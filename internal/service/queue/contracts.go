package queue

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	LockDay(ctx context.Context, day time.Time, timeout time.Duration) error
	LastPosition(ctx context.Context, day time.Time) (int, error)
	Create(ctx context.Context, entry *domain.QueueEntry) (*domain.QueueEntry, error)
	ListForDay(ctx context.Context, day time.Time) ([]*domain.QueueEntry, error)
	NextPending(ctx context.Context, day time.Time) (*domain.QueueEntry, error)
}

// Calendar календарь точки обслуживания
type Calendar interface {
	Now() time.Time
	StartOfDay(t time.Time) time.Time
	ParseDateOrToday(s string) (time.Time, error)
	FormatDate(day time.Time) string
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
