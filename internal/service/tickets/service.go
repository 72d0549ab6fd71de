package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	ticketRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/ticket"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
	"github.com/m04kA/SMC-TurnosService/pkg/ptr"
)

// Service сервис для работы с тикетами: выборки, смена состояния, QR
type Service struct {
	ticketRepo TicketRepository
	calendar   Calendar
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса тикетов
func NewService(
	ticketRepo TicketRepository,
	calendar Calendar,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ticketRepo: ticketRepo,
		calendar:   calendar,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByID получает тикет по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TicketResponse, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			s.logger.Warn("GetByID: ticket id=%d not found", id)
			return nil, ErrTicketNotFound
		}
		s.logger.Error("GetByID: repository error for ticket id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTicket(ticket), nil
}

// List тикеты по фильтру в порядке создания
func (s *Service) List(ctx context.Context, req *models.ListTicketsRequest) (*models.TicketListResponse, error) {
	filter := domain.TicketFilter{OrderBy: domain.OrderByCreatedAsc}

	if req.Date != nil {
		day, err := s.calendar.ParseDate(*req.Date)
		if err != nil {
			s.logger.Warn("List: invalid date=%q", *req.Date)
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, *req.Date)
		}
		from, to := s.calendar.DayBounds(day)
		filter.From, filter.To = &from, &to
	}

	if req.State != nil {
		state, err := domain.ParseTicketState(*req.State)
		if err != nil {
			s.logger.Warn("List: invalid state=%q", *req.State)
			return nil, fmt.Errorf("%w: %q", ErrInvalidState, *req.State)
		}
		filter.State = &state
	}

	if req.Channel != nil {
		channel, err := domain.ParseChannel(*req.Channel)
		if err != nil {
			s.logger.Warn("List: invalid channel=%q", *req.Channel)
			return nil, fmt.Errorf("%w: invalid channel %q", ErrInvalidInput, *req.Channel)
		}
		filter.Channel = &channel
	}

	tickets, err := s.ticketRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d tickets", len(tickets))
	return models.FromDomainTicketList(tickets), nil
}

// ListAppointments все тикеты дня по времени приема, включая отмененные
func (s *Service) ListAppointments(ctx context.Context, date string) (*models.TicketListResponse, error) {
	day, err := s.calendar.ParseDate(date)
	if err != nil {
		s.logger.Warn("ListAppointments: invalid date=%q", date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	from, to := s.calendar.DayBounds(day)
	tickets, err := s.ticketRepo.List(ctx, domain.TicketFilter{
		From:    &from,
		To:      &to,
		OrderBy: domain.OrderByAppointmentAsc,
	})
	if err != nil {
		s.logger.Error("ListAppointments: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: ListAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTicketList(tickets), nil
}

// UpdateState переводит тикет в новое состояние и обновляет заметки.
// Повторный вход в текущее состояние меняет только заметки.
func (s *Service) UpdateState(ctx context.Context, id int64, req *models.UpdateStateRequest) (*models.UpdateStateResponse, error) {
	s.logger.Info("UpdateState: ticket id=%d, state=%s", id, req.State)

	// 1. Валидация входных данных до обращения к хранилищу
	target, err := domain.ParseTicketState(strings.TrimSpace(req.State))
	if err != nil {
		s.logger.Warn("UpdateState: invalid state=%q for ticket id=%d", req.State, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, req.State)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var result *domain.Ticket
	var changed bool

	// 2. Чтение с блокировкой и запись в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		ticket, err := s.ticketRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, ticketRepo.ErrTicketNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("%w: UpdateState - get ticket: %v", ErrInternal, err)
		}

		now := s.calendar.Now()
		changed, err = ticket.Transition(target, now)
		if err != nil {
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, ticket.State, target)
		}

		if req.Notes != nil {
			ticket.Notes = req.Notes
			ticket.UpdatedAt = now
		}

		if !changed && req.Notes == nil {
			result = ticket
			return nil
		}

		if err := s.ticketRepo.Update(txCtx, ticket); err != nil {
			if errors.Is(err, ticketRepo.ErrTicketNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("%w: UpdateState - update ticket: %v", ErrInternal, err)
		}

		result = ticket
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			s.logger.Warn("UpdateState: ticket id=%d not found", id)
		case errors.Is(err, ErrInvalidState):
			s.logger.Warn("UpdateState: ticket id=%d: %v", id, err)
		case errors.Is(err, ErrInternal):
			s.logger.Error("UpdateState: ticket id=%d: %v", id, err)
		default:
			s.logger.Error("UpdateState: transaction failed for ticket id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateState - transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	resp := &models.UpdateStateResponse{
		Ticket:  *models.FromDomainTicket(result),
		Changed: changed,
	}
	if changed && result.State == domain.StateCalled {
		resp.Announcement = ptr.Ptr(domain.FormatAnnouncement(result))
	}

	s.logger.Info("UpdateState: ticket id=%d is %s (changed=%t)", id, result.State, changed)
	return resp, nil
}

// Cancel отменяет тикет; reason сохраняется в заметках
func (s *Service) Cancel(ctx context.Context, id int64, reason *string) (*models.UpdateStateResponse, error) {
	return s.UpdateState(ctx, id, &models.UpdateStateRequest{
		State: string(domain.StateCancelled),
		Notes: reason,
	})
}

// Statistics счетчики по состояниям для тикетов с приемом в указанный день
func (s *Service) Statistics(ctx context.Context, date string) (*models.StatisticsResponse, error) {
	day, err := s.calendar.ParseDateOrToday(date)
	if err != nil {
		s.logger.Warn("Statistics: invalid date=%q", date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	from, to := s.calendar.DayBounds(day)
	counts, err := s.ticketRepo.CountByState(ctx, from, to)
	if err != nil {
		s.logger.Error("Statistics: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: Statistics - repository error: %v", ErrInternal, err)
	}

	stats := domain.Statistics{Date: day}
	for state, count := range counts {
		stats.Add(state, count)
	}

	return models.FromDomainStatistics(stats), nil
}

// ValidateQR находит тикет по содержимому QR
func (s *Service) ValidateQR(ctx context.Context, req *models.ValidateQRRequest) (*models.ValidateQRResponse, error) {
	payload, err := domain.DecodeQRPayload(req.QRData)
	if err != nil {
		s.logger.Warn("ValidateQR: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidQRPayload, err)
	}

	ticket, err := s.ticketRepo.GetByCode(ctx, payload.Code)
	if err != nil {
		if errors.Is(err, ticketRepo.ErrTicketNotFound) {
			s.logger.Warn("ValidateQR: ticket code=%s not found", payload.Code)
			return nil, ErrTicketNotFound
		}
		s.logger.Error("ValidateQR: repository error for code=%s: %v", payload.Code, err)
		return nil, fmt.Errorf("%w: ValidateQR - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ValidateQR: ticket code=%s is %s", ticket.Code, ticket.State)
	return &models.ValidateQRResponse{
		Valid:  true,
		Ticket: *models.FromDomainTicket(ticket),
	}, nil
}

// QRHistory последние тикеты, зарегистрированные через QR
func (s *Service) QRHistory(ctx context.Context) (*models.TicketListResponse, error) {
	channel := domain.ChannelQR
	tickets, err := s.ticketRepo.List(ctx, domain.TicketFilter{
		Channel:    &channel,
		OnlyWithQR: true,
		OrderBy:    domain.OrderByCreatedDesc,
		Limit:      domain.QRHistoryLimit,
	})
	if err != nil {
		s.logger.Error("QRHistory: repository error: %v", err)
		return nil, fmt.Errorf("%w: QRHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTicketList(tickets), nil
}
