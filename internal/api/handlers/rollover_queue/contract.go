package rollover_queue

import (
	"context"

	rolloverQueue "github.com/m04kA/SMC-TurnosService/internal/usecase/rollover_queue"
)

type RolloverQueueUseCase interface {
	Execute(ctx context.Context, req *rolloverQueue.Request) (*rolloverQueue.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
