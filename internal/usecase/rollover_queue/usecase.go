package rollover_queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	queueService "github.com/m04kA/SMC-TurnosService/internal/service/queue"
)

// UseCase use case постановки в очередь записей на день.
// Тикеты с приемом не на день создания в очередь при создании не попадают;
// этот use case ставит их в очередь в день приема.
type UseCase struct {
	ticketRepo TicketRepository
	queueRepo  QueueRepository
	queue      QueueService
	calendar   Calendar
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ticketRepo TicketRepository,
	queueRepo QueueRepository,
	queue QueueService,
	calendar Calendar,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		ticketRepo: ticketRepo,
		queueRepo:  queueRepo,
		queue:      queue,
		calendar:   calendar,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute ставит в очередь дня тикеты в pending с приемом в этот день и без записи в очереди.
// Порядок постановки - по времени приема. Все записи создаются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Разбираем дату
	day, err := uc.calendar.ParseDateOrToday(req.Date)
	if err != nil {
		uc.logger.Warn("RolloverQueue: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	dayStr := day.Format(domain.DateFormat)
	uc.logger.Info("RolloverQueue: day=%s", dayStr)

	resp := &Response{Date: day}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		resp.Enqueued, resp.Skipped = 0, 0

		// 2. Записи дня в ожидании
		from, to := uc.calendar.DayBounds(day)
		state := domain.StatePending
		tickets, err := uc.ticketRepo.List(txCtx, domain.TicketFilter{
			From:    &from,
			To:      &to,
			State:   &state,
			OrderBy: domain.OrderByAppointmentAsc,
		})
		if err != nil {
			return fmt.Errorf("%w: list tickets: %v", ErrInternal, err)
		}

		// 3. Ставим в очередь тех, кого в ней нет
		for _, t := range tickets {
			queued, err := uc.queueRepo.ExistsForTicket(txCtx, t.ID, day)
			if err != nil {
				return fmt.Errorf("%w: check queue for ticket id=%d: %v", ErrInternal, t.ID, err)
			}
			if queued {
				resp.Skipped++
				continue
			}

			if _, err := uc.queue.Enqueue(txCtx, t.ID, day); err != nil {
				if errors.Is(err, queueService.ErrConflict) {
					return fmt.Errorf("%w: %v", ErrConflict, err)
				}
				return fmt.Errorf("%w: enqueue ticket id=%d: %v", ErrInternal, t.ID, err)
			}
			resp.Enqueued++
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("RolloverQueue: day=%s: %v", dayStr, err)
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("RolloverQueue: day=%s, enqueued=%d, skipped=%d", dayStr, resp.Enqueued, resp.Skipped)
	return resp, nil
}
