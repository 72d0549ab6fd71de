package numbering

import (
	"context"
	"time"
)

// TicketRepository операции репозитория тикетов, нужные нумерации
type TicketRepository interface {
	LockCodePrefix(ctx context.Context, prefix string, timeout time.Duration) error
	ListCodesWithPrefix(ctx context.Context, prefix string) ([]string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
