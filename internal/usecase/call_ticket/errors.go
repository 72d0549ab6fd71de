package call_ticket

import (
	"errors"
	"fmt"
)

var (
	// ErrTicketNotFound возвращается, когда тикет не найден
	ErrTicketNotFound = errors.New("call_ticket: ticket not found")

	// ErrInvalidState тикет нельзя вызвать из текущего состояния
	ErrInvalidState = errors.New("call_ticket: invalid state")

	// ErrTransitionNotAllowed тикет уже обслужен или отменен
	ErrTransitionNotAllowed = fmt.Errorf("%w: transition not allowed", ErrInvalidState)

	// ErrQueueEmpty в очереди дня нет тикетов в ожидании
	ErrQueueEmpty = errors.New("call_ticket: no pending tickets in queue")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("call_ticket: internal error")
)
