package get_queue

import (
	"context"

	"github.com/m04kA/SMC-TurnosService/internal/service/queue/models"
)

type QueueService interface {
	ListForDay(ctx context.Context, date string) (*models.QueueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
