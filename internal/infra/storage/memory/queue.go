package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	queueRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/queue"
)

// QueueRepository очередь в памяти
type QueueRepository struct {
	s *Store
}

func dayKey(day time.Time) string {
	return day.Format(domain.DateFormat)
}

// LockDay транзакция хранилища уже эксклюзивна
func (r *QueueRepository) LockDay(ctx context.Context, day time.Time, timeout time.Duration) error {
	return nil
}

// LastPosition максимальная позиция дня
func (r *QueueRepository) LastPosition(ctx context.Context, day time.Time) (int, error) {
	defer r.s.lock(ctx)()

	last := 0
	for _, e := range r.s.entries {
		if dayKey(e.Day) == dayKey(day) && e.Position > last {
			last = e.Position
		}
	}
	return last, nil
}

// Create добавляет запись, (day, position) и (ticket, day) уникальны
func (r *QueueRepository) Create(ctx context.Context, entry *domain.QueueEntry) (*domain.QueueEntry, error) {
	defer r.s.lock(ctx)()

	key := dayKey(entry.Day)
	for _, e := range r.s.entries {
		if dayKey(e.Day) != key {
			continue
		}
		if e.Position == entry.Position {
			return nil, fmt.Errorf("%w: day=%s, position=%d", queueRepo.ErrDuplicatePosition, key, entry.Position)
		}
		if e.TicketID == entry.TicketID {
			return nil, fmt.Errorf("%w: ticket_id=%d, day=%s", queueRepo.ErrAlreadyQueued, entry.TicketID, key)
		}
	}

	r.s.lastEntryID++
	entry.ID = r.s.lastEntryID

	stored := *entry
	stored.Ticket = nil
	r.s.entries = append(r.s.entries, stored)

	return entry, nil
}

// ListForDay записи дня по позиции с тикетами
func (r *QueueRepository) ListForDay(ctx context.Context, day time.Time) ([]*domain.QueueEntry, error) {
	defer r.s.lock(ctx)()

	return r.forDay(day), nil
}

// NextPending первая по позиции запись с тикетом в состоянии pending
func (r *QueueRepository) NextPending(ctx context.Context, day time.Time) (*domain.QueueEntry, error) {
	defer r.s.lock(ctx)()

	for _, e := range r.forDay(day) {
		if e.Ticket != nil && e.Ticket.State == domain.StatePending {
			return e, nil
		}
	}
	return nil, queueRepo.ErrEntryNotFound
}

// ExistsForTicket стоит ли тикет в очереди дня
func (r *QueueRepository) ExistsForTicket(ctx context.Context, ticketID int64, day time.Time) (bool, error) {
	defer r.s.lock(ctx)()

	for _, e := range r.s.entries {
		if e.TicketID == ticketID && dayKey(e.Day) == dayKey(day) {
			return true, nil
		}
	}
	return false, nil
}

// DeleteAll удаляет все записи очереди
func (r *QueueRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer r.s.lock(ctx)()

	deleted := int64(len(r.s.entries))
	r.s.entries = nil
	return deleted, nil
}

// forDay вызывается под mu
func (r *QueueRepository) forDay(day time.Time) []*domain.QueueEntry {
	key := dayKey(day)
	result := make([]*domain.QueueEntry, 0)
	for _, e := range r.s.entries {
		if dayKey(e.Day) != key {
			continue
		}
		entry := e
		if t, ok := r.s.tickets[e.TicketID]; ok {
			entry.Ticket = cloneTicket(t)
		}
		result = append(result, &entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result
}
