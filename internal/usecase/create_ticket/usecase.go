package create_ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	ticketRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/ticket"
	"github.com/m04kA/SMC-TurnosService/internal/service/numbering"
	queueService "github.com/m04kA/SMC-TurnosService/internal/service/queue"
)

const operation = "create_ticket"

// UseCase use case для создания тикета
type UseCase struct {
	ticketRepo  TicketRepository
	codes       CodeGenerator
	queue       QueueService
	calendar    Calendar
	txManager   TransactionManager
	metrics     Metrics
	maxAttempts int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ticketRepo TicketRepository,
	codes CodeGenerator,
	queue QueueService,
	calendar Calendar,
	txManager TransactionManager,
	metrics Metrics,
	maxAttempts int,
	logger Logger,
) *UseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &UseCase{
		ticketRepo:  ticketRepo,
		codes:       codes,
		queue:       queue,
		calendar:    calendar,
		txManager:   txManager,
		metrics:     metrics,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Execute выполняет use case создания тикета.
// Код, вставка тикета и позиция в очереди выдаются в одной транзакции;
// конфликт параллельной выдачи повторяется не более maxAttempts раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateTicket: client=%q, service=%q, appointment=%q, channel=%s",
		req.ClientName, req.ServiceName, req.AppointmentAt, req.Channel)

	// 1. Валидация входных данных
	channel, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateTicket: validation failed: %v", err)
		return nil, err
	}

	// 2. Время приема
	appointmentAt, err := uc.calendar.ParseAppointment(req.AppointmentAt)
	if err != nil {
		uc.logger.Warn("CreateTicket: invalid appointment=%q: %v", req.AppointmentAt, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidAppointment, req.AppointmentAt)
	}

	// 3. Транзакция с ограниченным числом повторов
	var resp *Response
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		resp, err = uc.create(ctx, req, channel, appointmentAt)
		if err == nil {
			break
		}
		if !isConflict(err) {
			uc.logger.Error("CreateTicket: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		uc.logger.Warn("CreateTicket: attempt %d/%d conflicted: %v", attempt, uc.maxAttempts, err)
		if attempt < uc.maxAttempts {
			uc.metrics.ConflictRetry(operation)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, ctx.Err())
		}
	}
	if err != nil {
		uc.logger.Error("CreateTicket: giving up after %d attempts", uc.maxAttempts)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}

	uc.metrics.TicketCreated(string(channel), resp.QueuePosition != nil)
	uc.logger.Info("CreateTicket: created ticket id=%d, code=%s, position=%v",
		resp.Ticket.ID, resp.Ticket.Code, positionLabel(resp.QueuePosition))

	return resp, nil
}

// create одна попытка: вся работа откатывается при любой ошибке
func (uc *UseCase) create(ctx context.Context, req *Request, channel domain.Channel, appointmentAt time.Time) (*Response, error) {
	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		now := uc.calendar.Now()

		// 3.1. Код по дню создания, блокировка префикса держится до коммита
		code, err := uc.codes.NextCode(txCtx, now)
		if err != nil {
			return err
		}

		ticket := &domain.Ticket{
			Code:          code,
			ClientName:    req.ClientName,
			Phone:         req.Phone,
			ServiceName:   req.ServiceName,
			CreatedAt:     now,
			AppointmentAt: appointmentAt,
			State:         domain.StatePending,
			Channel:       channel,
			Notes:         req.Notes,
			UpdatedAt:     now,
		}

		// 3.2. QR payload только для канала qr
		if channel == domain.ChannelQR {
			payload, err := domain.NewQRPayload(ticket).Encode()
			if err != nil {
				return err
			}
			ticket.QRPayload = &payload
		}

		// 3.3. Сохраняем тикет
		created, err := uc.ticketRepo.Create(txCtx, ticket)
		if err != nil {
			return err
		}
		resp = &Response{Ticket: created}

		// 3.4. В очередь только прием на сегодня, остальные ставит rollover
		if !uc.calendar.SameDay(appointmentAt, now) {
			return nil
		}

		entry, err := uc.queue.Enqueue(txCtx, created.ID, now)
		if err != nil {
			return err
		}
		position := entry.Position
		resp.QueuePosition = &position

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// isConflict ошибки параллельной выдачи, после которых попытку можно повторить
func isConflict(err error) bool {
	return errors.Is(err, numbering.ErrConflict) ||
		errors.Is(err, queueService.ErrConflict) ||
		errors.Is(err, ticketRepo.ErrDuplicateCode)
}

func positionLabel(position *int) string {
	if position == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *position)
}
