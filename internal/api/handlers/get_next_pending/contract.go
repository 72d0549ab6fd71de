package get_next_pending

import (
	"context"

	"github.com/m04kA/SMC-TurnosService/internal/service/queue/models"
)

type QueueService interface {
	NextPending(ctx context.Context, date string) (*models.QueueEntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
