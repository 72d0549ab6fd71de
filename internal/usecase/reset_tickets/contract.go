package reset_tickets

import "context"

// TicketRepository интерфейс репозитория тикетов
type TicketRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
}

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
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
