package call_ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	configRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/config"
	queueRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/queue"
	ticketRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/ticket"
)

// UseCase use case вызова тикета к стойке
type UseCase struct {
	ticketRepo TicketRepository
	queueRepo  QueueRepository
	configRepo ConfigRepository
	publisher  Publisher
	calendar   Calendar
	txManager  TransactionManager
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ticketRepo TicketRepository,
	queueRepo QueueRepository,
	configRepo ConfigRepository,
	publisher Publisher,
	calendar Calendar,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		ticketRepo: ticketRepo,
		queueRepo:  queueRepo,
		configRepo: configRepo,
		publisher:  publisher,
		calendar:   calendar,
		txManager:  txManager,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute вызывает тикет по ID.
// pending переходит в called; повторный вызов тикета в called повторяет объявление.
func (uc *UseCase) Execute(ctx context.Context, ticketID int64) (*Response, error) {
	uc.logger.Info("CallTicket: ticket id=%d", ticketID)

	var ticket *domain.Ticket
	var changed bool

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		ticket, err = uc.ticketRepo.GetByID(txCtx, ticketID)
		if err != nil {
			if errors.Is(err, ticketRepo.ErrTicketNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("%w: get ticket: %v", ErrInternal, err)
		}

		changed, err = uc.transition(txCtx, ticket)
		return err
	})
	if err != nil {
		return nil, uc.classify("CallTicket", ticketID, err)
	}

	return uc.announce(ctx, ticket, !changed, nil), nil
}

// ExecuteNext вызывает первый по позиции тикет в ожидании из очереди сегодняшнего дня
func (uc *UseCase) ExecuteNext(ctx context.Context) (*Response, error) {
	day := uc.calendar.Today()
	uc.logger.Info("CallNext: day=%s", day.Format(domain.DateFormat))

	var ticket *domain.Ticket
	var position int

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка тикета блокируется, занятые параллельным вызовом пропускаются
		entry, err := uc.queueRepo.NextPending(txCtx, day)
		if err != nil {
			if errors.Is(err, queueRepo.ErrEntryNotFound) {
				return ErrQueueEmpty
			}
			return fmt.Errorf("%w: next pending: %v", ErrInternal, err)
		}
		if entry.Ticket == nil {
			return fmt.Errorf("%w: queue entry id=%d has no ticket", ErrInternal, entry.ID)
		}

		ticket = entry.Ticket
		position = entry.Position
		_, err = uc.transition(txCtx, ticket)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrQueueEmpty) {
			uc.logger.Info("CallNext: queue is empty")
			return nil, err
		}
		return nil, uc.classify("CallNext", 0, err)
	}

	return uc.announce(ctx, ticket, false, &position), nil
}

// transition переводит тикет в called и сохраняет его
func (uc *UseCase) transition(ctx context.Context, ticket *domain.Ticket) (bool, error) {
	from := ticket.State
	changed, err := ticket.Transition(domain.StateCalled, uc.calendar.Now())
	if err != nil {
		return false, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, domain.StateCalled)
	}
	if !changed {
		return false, nil
	}

	if err := uc.ticketRepo.Update(ctx, ticket); err != nil {
		return false, fmt.Errorf("%w: update ticket: %v", ErrInternal, err)
	}
	return true, nil
}

// announce собирает объявление и публикует его после коммита.
// Ошибка доставки на табло не отменяет вызов.
func (uc *UseCase) announce(ctx context.Context, ticket *domain.Ticket, recall bool, position *int) *Response {
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("CallTicket: failed to load config, using voice defaults: %v", err)
		}
		cfg = nil
	}

	announcement := domain.NewAnnouncement(ticket, cfg)
	if err := uc.publisher.Publish(ctx, announcement); err != nil {
		uc.logger.Error("CallTicket: failed to publish announcement for ticket id=%d: %v", ticket.ID, err)
	}

	uc.metrics.TicketCalled(recall)
	uc.logger.Info("CallTicket: ticket id=%d, code=%s called (recall=%t)", ticket.ID, ticket.Code, recall)

	return &Response{
		Ticket:       ticket,
		Announcement: announcement,
		Recall:       recall,
		Position:     position,
	}
}

func (uc *UseCase) classify(op string, ticketID int64, err error) error {
	switch {
	case errors.Is(err, ErrTicketNotFound):
		uc.logger.Warn("%s: ticket id=%d not found", op, ticketID)
		return err
	case errors.Is(err, ErrInvalidState):
		uc.logger.Warn("%s: ticket id=%d: %v", op, ticketID, err)
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("%s: ticket id=%d: %v", op, ticketID, err)
		return err
	default:
		uc.logger.Error("%s: transaction failed: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
