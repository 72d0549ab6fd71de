package reset_tickets

import (
	"context"
	"fmt"
)

// Response количество удаленных записей
type Response struct {
	Tickets      int64
	QueueEntries int64
}

// UseCase административный сброс: удаляет очередь и тикеты
type UseCase struct {
	ticketRepo TicketRepository
	queueRepo  QueueRepository
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ticketRepo TicketRepository, queueRepo QueueRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		ticketRepo: ticketRepo,
		queueRepo:  queueRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute удаляет все записи очереди и все тикеты в одной транзакции
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	uc.logger.Warn("ResetTickets: deleting all queue entries and tickets")

	resp := &Response{}
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		if resp.QueueEntries, err = uc.queueRepo.DeleteAll(txCtx); err != nil {
			return fmt.Errorf("delete queue entries: %v", err)
		}
		if resp.Tickets, err = uc.ticketRepo.DeleteAll(txCtx); err != nil {
			return fmt.Errorf("delete tickets: %v", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ResetTickets: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("ResetTickets: deleted tickets=%d, queue entries=%d", resp.Tickets, resp.QueueEntries)
	return resp, nil
}
