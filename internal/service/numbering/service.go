package numbering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	ticketRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/ticket"
	"github.com/m04kA/SMC-TurnosService/pkg/pglock"
)

// Service выдача кодов тикетов DDMM-NNN
type Service struct {
	ticketRepo  TicketRepository
	lockTimeout time.Duration
	logger      Logger
}

// NewService создает новый экземпляр сервиса нумерации
func NewService(ticketRepo TicketRepository, lockTimeout time.Duration, logger Logger) *Service {
	return &Service{
		ticketRepo:  ticketRepo,
		lockTimeout: lockTimeout,
		logger:      logger,
	}
}

// NextCode возвращает следующий код для дня создания.
// Вызывается внутри транзакции, которая затем вставляет тикет: блокировка префикса
// держится до конца транзакции, поэтому параллельные вызовы получают разные номера.
func (s *Service) NextCode(ctx context.Context, creationDate time.Time) (string, error) {
	prefix := domain.CodePrefix(creationDate)

	if err := s.ticketRepo.LockCodePrefix(ctx, prefix, s.lockTimeout); err != nil {
		switch {
		case errors.Is(err, ticketRepo.ErrLockTimeout):
			s.logger.Warn("NextCode: prefix=%s is busy: %v", prefix, err)
			return "", fmt.Errorf("%w: prefix=%s", ErrConflict, prefix)
		case errors.Is(err, pglock.ErrNotInTransaction):
			return "", ErrNotInTransaction
		default:
			s.logger.Error("NextCode: failed to lock prefix=%s: %v", prefix, err)
			return "", fmt.Errorf("%w: NextCode - lock prefix: %v", ErrInternal, err)
		}
	}

	codes, err := s.ticketRepo.ListCodesWithPrefix(ctx, prefix)
	if err != nil {
		s.logger.Error("NextCode: failed to list codes for prefix=%s: %v", prefix, err)
		return "", fmt.Errorf("%w: NextCode - list codes: %v", ErrInternal, err)
	}

	code := domain.FormatCode(prefix, domain.NextSequence(codes, prefix))
	s.logger.Info("NextCode: prefix=%s, existing=%d, code=%s", prefix, len(codes), code)

	return code, nil
}
