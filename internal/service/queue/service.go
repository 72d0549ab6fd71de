package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	queueRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/queue"
	"github.com/m04kA/SMC-TurnosService/internal/service/queue/models"
)

// Service очередь обслуживания по дням
type Service struct {
	queueRepo   QueueRepository
	calendar    Calendar
	txManager   TransactionManager
	lockTimeout time.Duration
	logger      Logger
}

// NewService создает новый экземпляр сервиса очереди
func NewService(
	queueRepo QueueRepository,
	calendar Calendar,
	txManager TransactionManager,
	lockTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		queueRepo:   queueRepo,
		calendar:    calendar,
		txManager:   txManager,
		lockTimeout: lockTimeout,
		logger:      logger,
	}
}

// Enqueue ставит тикет в конец очереди дня.
// Позиция назначается под блокировкой дня, поэтому позиции дня плотные и уникальные.
// Внутри внешней транзакции блокировка держится до ее завершения.
func (s *Service) Enqueue(ctx context.Context, ticketID int64, day time.Time) (*domain.QueueEntry, error) {
	day = s.calendar.StartOfDay(day)
	dayStr := s.calendar.FormatDate(day)

	var created *domain.QueueEntry
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.queueRepo.LockDay(txCtx, day, s.lockTimeout); err != nil {
			if errors.Is(err, queueRepo.ErrLockTimeout) {
				return fmt.Errorf("%w: day=%s", ErrConflict, dayStr)
			}
			return fmt.Errorf("%w: Enqueue - lock day: %v", ErrInternal, err)
		}

		last, err := s.queueRepo.LastPosition(txCtx, day)
		if err != nil {
			return fmt.Errorf("%w: Enqueue - last position: %v", ErrInternal, err)
		}

		created, err = s.queueRepo.Create(txCtx, &domain.QueueEntry{
			TicketID:  ticketID,
			Position:  last + 1,
			Day:       day,
			CreatedAt: s.calendar.Now(),
		})
		if err != nil {
			switch {
			case errors.Is(err, queueRepo.ErrDuplicatePosition):
				return fmt.Errorf("%w: day=%s, position=%d", ErrConflict, dayStr, last+1)
			case errors.Is(err, queueRepo.ErrAlreadyQueued):
				return fmt.Errorf("%w: ticket_id=%d, day=%s", ErrAlreadyQueued, ticketID, dayStr)
			default:
				return fmt.Errorf("%w: Enqueue - create entry: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyQueued):
			s.logger.Warn("Enqueue: ticket_id=%d, day=%s: %v", ticketID, dayStr, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Enqueue: ticket_id=%d, day=%s: %v", ticketID, dayStr, err)
			return nil, err
		default:
			s.logger.Error("Enqueue: transaction failed for ticket_id=%d: %v", ticketID, err)
			return nil, fmt.Errorf("%w: Enqueue - transaction: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Enqueue: ticket_id=%d, day=%s, position=%d", ticketID, dayStr, created.Position)
	return created, nil
}

// ListForDay очередь дня по возрастанию позиции; пустая дата означает сегодня
func (s *Service) ListForDay(ctx context.Context, date string) (*models.QueueResponse, error) {
	day, err := s.calendar.ParseDateOrToday(date)
	if err != nil {
		s.logger.Warn("ListForDay: invalid date=%q", date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	entries, err := s.queueRepo.ListForDay(ctx, day)
	if err != nil {
		s.logger.Error("ListForDay: repository error for day=%s: %v", s.calendar.FormatDate(day), err)
		return nil, fmt.Errorf("%w: ListForDay - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainQueue(entries, s.calendar.FormatDate(day)), nil
}

// NextPending первая по позиции запись с тикетом в pending.
// Пустая очередь не ошибка: возвращается nil, nil.
func (s *Service) NextPending(ctx context.Context, date string) (*models.QueueEntryResponse, error) {
	day, err := s.calendar.ParseDateOrToday(date)
	if err != nil {
		s.logger.Warn("NextPending: invalid date=%q", date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	entry, err := s.queueRepo.NextPending(ctx, day)
	if err != nil {
		if errors.Is(err, queueRepo.ErrEntryNotFound) {
			return nil, nil
		}
		s.logger.Error("NextPending: repository error for day=%s: %v", s.calendar.FormatDate(day), err)
		return nil, fmt.Errorf("%w: NextPending - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainQueueEntry(entry, s.calendar.FormatDate(day)), nil
}
