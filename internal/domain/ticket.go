package domain

import (
	"errors"
	"fmt"
	"time"
)

// Channel how a ticket was registered
type Channel string

const (
	ChannelQR     Channel = "qr"
	ChannelManual Channel = "manual"
)

// ErrInvalidChannel неизвестный канал регистрации
var ErrInvalidChannel = errors.New("domain: invalid channel")

// ParseChannel разбирает канал регистрации
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelQR, ChannelManual:
		return Channel(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, s)
	}
}

// Ticket represents one customer's request for service ("turno")
type Ticket struct {
	ID            int64
	Code          string // DDMM-NNN, день и месяц создания
	ClientName    string
	Phone         *string
	ServiceName   string // свободный текст, не ссылка на каталог
	CreatedAt     time.Time
	AppointmentAt time.Time
	State         TicketState
	Channel       Channel
	QRPayload     *string // только для канала qr
	Notes         *string

	CalledAt   *time.Time
	AttendedAt *time.Time

	UpdatedAt time.Time
}

// Transition переводит тикет в новое состояние.
// Повторный вход в текущее состояние ничего не меняет и возвращает changed=false.
// called_at и attended_at выставляются не более одного раза.
func (t *Ticket) Transition(to TicketState, now time.Time) (bool, error) {
	if !to.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidState, to)
	}
	if t.State == to {
		return false, nil
	}
	if !t.State.CanTransitionTo(to) {
		return false, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, t.State, to)
	}

	t.State = to
	switch to {
	case StateCalled:
		if t.CalledAt == nil {
			calledAt := now
			t.CalledAt = &calledAt
		}
	case StateAttended:
		if t.AttendedAt == nil {
			attendedAt := now
			t.AttendedAt = &attendedAt
		}
	}
	t.UpdatedAt = now

	return true, nil
}

// IsCancelled returns true if the ticket has been cancelled
func (t *Ticket) IsCancelled() bool {
	return t.State == StateCancelled
}

// AppointmentDay returns the calendar day of the appointment in loc
func (t *Ticket) AppointmentDay(loc *time.Location) time.Time {
	a := t.AppointmentAt.In(loc)
	return time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc)
}

// TicketFilter фильтр для выборки тикетов
type TicketFilter struct {
	From             *time.Time   // Начало периода по appointment_at (включительно)
	To               *time.Time   // Конец периода по appointment_at (не включительно)
	State            *TicketState // Фильтр по состоянию
	Channel          *Channel     // Фильтр по каналу
	ExcludeCancelled bool
	OnlyWithQR       bool
	CalledBefore     *time.Time // Тикеты в состоянии called, вызванные раньше указанного момента
	OrderBy          TicketOrder
	Limit            uint64 // 0 - без ограничения
}

// TicketOrder порядок сортировки выборки
type TicketOrder int

const (
	OrderByCreatedAsc TicketOrder = iota
	OrderByAppointmentAsc
	OrderByCreatedDesc
)

// Statistics счетчики тикетов по состояниям за день
type Statistics struct {
	Date      time.Time
	Total     int
	Pending   int
	Called    int
	Attended  int
	Cancelled int
}

// Add учитывает count тикетов в состоянии state
func (s *Statistics) Add(state TicketState, count int) {
	switch state {
	case StatePending:
		s.Pending += count
	case StateCalled:
		s.Called += count
	case StateAttended:
		s.Attended += count
	case StateCancelled:
		s.Cancelled += count
	default:
		return
	}
	s.Total += count
}
