package config

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BusinessConfig, error)
	Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
