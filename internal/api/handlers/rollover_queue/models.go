package rollover_queue

import (
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	rolloverQueue "github.com/m04kA/SMC-TurnosService/internal/usecase/rollover_queue"
)

// RolloverResponse HTTP response model
type RolloverResponse struct {
	Date     string `json:"date"`
	Enqueued int    `json:"enqueued"`
	Skipped  int    `json:"skipped"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *rolloverQueue.Response) *RolloverResponse {
	return &RolloverResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Enqueued: resp.Enqueued,
		Skipped:  resp.Skipped,
	}
}
