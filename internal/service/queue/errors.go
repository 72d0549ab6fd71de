package queue

import "errors"

var (
	// ErrConflict очередь дня занята параллельной вставкой, операцию можно повторить
	ErrConflict = errors.New("queue: day queue is busy")

	// ErrAlreadyQueued тикет уже стоит в очереди этого дня
	ErrAlreadyQueued = errors.New("queue: ticket already queued")

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("queue: invalid date format")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("queue: internal error")
)
