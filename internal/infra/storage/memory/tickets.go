package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	ticketRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/ticket"
)

// TicketRepository тикеты в памяти
type TicketRepository struct {
	s *Store
}

// Create сохраняет тикет, код уникален
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.tickets {
		if existing.Code == ticket.Code {
			return nil, fmt.Errorf("%w: code=%s", ticketRepo.ErrDuplicateCode, ticket.Code)
		}
	}

	r.s.lastTicketID++
	ticket.ID = r.s.lastTicketID
	r.s.tickets[ticket.ID] = *cloneTicket(*ticket)

	return ticket, nil
}

// GetByID получает тикет по ID
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	defer r.s.lock(ctx)()

	t, ok := r.s.tickets[id]
	if !ok {
		return nil, ticketRepo.ErrTicketNotFound
	}
	return cloneTicket(t), nil
}

// GetByCode получает тикет по коду
func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	defer r.s.lock(ctx)()

	for _, t := range r.s.tickets {
		if t.Code == code {
			return cloneTicket(t), nil
		}
	}
	return nil, ticketRepo.ErrTicketNotFound
}

// List выборка по фильтру с теми же правилами сортировки, что и в PostgreSQL
func (r *TicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Ticket, 0)
	for _, t := range r.s.tickets {
		if matches(t, filter) {
			result = append(result, cloneTicket(t))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch filter.OrderBy {
		case domain.OrderByAppointmentAsc:
			if !a.AppointmentAt.Equal(b.AppointmentAt) {
				return a.AppointmentAt.Before(b.AppointmentAt)
			}
			return a.ID < b.ID
		case domain.OrderByCreatedDesc:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	})

	if filter.Limit > 0 && uint64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

func matches(t domain.Ticket, f domain.TicketFilter) bool {
	if f.From != nil && t.AppointmentAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.AppointmentAt.Before(*f.To) {
		return false
	}
	if f.State != nil && t.State != *f.State {
		return false
	}
	if f.Channel != nil && t.Channel != *f.Channel {
		return false
	}
	if f.ExcludeCancelled && t.State == domain.StateCancelled {
		return false
	}
	if f.OnlyWithQR && t.QRPayload == nil {
		return false
	}
	if f.CalledBefore != nil {
		if t.State != domain.StateCalled || t.CalledAt == nil || !t.CalledAt.Before(*f.CalledBefore) {
			return false
		}
	}
	return true
}

// CountByState количество тикетов по состояниям с приемом в периоде [from, to)
func (r *TicketRepository) CountByState(ctx context.Context, from, to time.Time) (map[domain.TicketState]int, error) {
	defer r.s.lock(ctx)()

	counts := make(map[domain.TicketState]int)
	for _, t := range r.s.tickets {
		if !t.AppointmentAt.Before(from) && t.AppointmentAt.Before(to) {
			counts[t.State]++
		}
	}
	return counts, nil
}

// Update сохраняет изменяемые поля тикета
func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	defer r.s.lock(ctx)()

	stored, ok := r.s.tickets[ticket.ID]
	if !ok {
		return ticketRepo.ErrTicketNotFound
	}

	stored.State = ticket.State
	stored.Notes = clonePtr(ticket.Notes)
	stored.CalledAt = clonePtr(ticket.CalledAt)
	stored.AttendedAt = clonePtr(ticket.AttendedAt)
	stored.UpdatedAt = ticket.UpdatedAt
	r.s.tickets[ticket.ID] = stored

	return nil
}

// LockCodePrefix транзакция хранилища уже эксклюзивна
func (r *TicketRepository) LockCodePrefix(ctx context.Context, prefix string, timeout time.Duration) error {
	return nil
}

// ListCodesWithPrefix коды тикетов с префиксом, за все годы
func (r *TicketRepository) ListCodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	defer r.s.lock(ctx)()

	codes := make([]string, 0)
	for _, t := range r.s.tickets {
		if strings.HasPrefix(t.Code, prefix+"-") {
			codes = append(codes, t.Code)
		}
	}
	return codes, nil
}

// DeleteAll удаляет все тикеты вместе с записями очереди
func (r *TicketRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer r.s.lock(ctx)()

	deleted := int64(len(r.s.tickets))
	r.s.tickets = make(map[int64]domain.Ticket)
	r.s.entries = nil

	return deleted, nil
}
