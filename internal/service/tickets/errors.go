package tickets

import (
	"errors"
	"fmt"
)

var (
	// ErrTicketNotFound возвращается, когда тикет не найден
	ErrTicketNotFound = errors.New("tickets: ticket not found")

	// ErrInvalidState неизвестное состояние в запросе
	ErrInvalidState = errors.New("tickets: invalid state")

	// ErrTransitionNotAllowed переход запрещен для текущего состояния
	ErrTransitionNotAllowed = fmt.Errorf("%w: transition not allowed", ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("tickets: invalid input data")

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("tickets: invalid date format")

	// ErrInvalidQRPayload содержимое QR не распознано
	ErrInvalidQRPayload = errors.New("tickets: invalid qr payload")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tickets: internal error")
)
