package domain

import (
	"errors"
	"fmt"
)

// TicketState represents the lifecycle state of a ticket
type TicketState string

const (
	StatePending   TicketState = "pending"
	StateCalled    TicketState = "called"
	StateAttended  TicketState = "attended"
	StateCancelled TicketState = "cancelled"
)

var (
	// ErrInvalidState неизвестное значение состояния
	ErrInvalidState = errors.New("domain: invalid ticket state")

	// ErrTransitionNotAllowed переход между состояниями запрещен таблицей переходов
	ErrTransitionNotAllowed = fmt.Errorf("%w: transition not allowed", ErrInvalidState)
)

// AllStates все состояния в порядке жизненного цикла
var AllStates = []TicketState{StatePending, StateCalled, StateAttended, StateCancelled}

// transitions допустимые переходы. Повторный вход в текущее состояние обрабатывается отдельно.
var transitions = map[TicketState][]TicketState{
	StatePending:   {StateCalled, StateAttended, StateCancelled},
	StateCalled:    {StateAttended, StateCancelled},
	StateAttended:  {StateCancelled},
	StateCancelled: {},
}

// ParseTicketState разбирает строковое значение состояния
func ParseTicketState(s string) (TicketState, error) {
	state := TicketState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return state, nil
}

// IsValid returns true if the state is one of the known states
func (s TicketState) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal returns true if no transition leaves the state
func (s TicketState) IsTerminal() bool {
	return s == StateCancelled
}

// CanTransitionTo проверяет переход по таблице
func (s TicketState) CanTransitionTo(to TicketState) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s TicketState) String() string {
	return string(s)
}
