package rollover_queue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
	rolloverQueue "github.com/m04kA/SMC-TurnosService/internal/usecase/rollover_queue"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	useCase RolloverQueueUseCase
	logger  Logger
}

func NewHandler(useCase RolloverQueueUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue/rollover
// Query params: date (опционально, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &rolloverQueue.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, rolloverQueue.ErrInvalidDate):
			h.logger.Warn("POST /queue/rollover - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rolloverQueue.ErrConflict):
			h.logger.Warn("POST /queue/rollover - Day queue is busy: date=%s", date)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /queue/rollover - Failed to roll over queue: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/rollover - Queue rolled over: date=%s, enqueued=%d, skipped=%d",
		date, result.Enqueued, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
