package get_availability

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	configRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/config"
)

// UseCase use case получения доступности слотов дня
type UseCase struct {
	ticketRepo TicketRepository
	configRepo ConfigRepository
	calendar   Calendar
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ticketRepo TicketRepository,
	configRepo ConfigRepository,
	calendar Calendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		ticketRepo: ticketRepo,
		configRepo: configRepo,
		calendar:   calendar,
		logger:     logger,
	}
}

// Execute считает слоты дня и отмечает занятые не отмененными тикетами.
// Только чтение: повторный вызов на тех же данных дает тот же результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%q", req.Date)

	// 1. Разбираем дату
	day, err := uc.calendar.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	// 2. Конфигурация обязательна
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailability: business configuration is missing")
			return nil, ErrConfigMissing
		}
		uc.logger.Error("GetAvailability: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 3. Тикеты дня без отмененных
	from, to := uc.calendar.DayBounds(day)
	tickets, err := uc.ticketRepo.List(ctx, domain.TicketFilter{
		From:             &from,
		To:               &to,
		ExcludeCancelled: true,
		OrderBy:          domain.OrderByAppointmentAsc,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get tickets: %v", err)
		return nil, fmt.Errorf("%w: failed to get tickets: %v", ErrInternal, err)
	}

	// 4. Слоты
	slots := slices.Collect(generateSlots(day, cfg, occupiedMinutes(tickets)))
	if slots == nil {
		slots = []domain.Slot{}
	}

	uc.logger.Info("GetAvailability: date=%s, slots=%d, booked=%d",
		day.Format(domain.DateFormat), len(slots), len(tickets))

	return &Response{
		Date:  day,
		Slots: slots,
	}, nil
}
