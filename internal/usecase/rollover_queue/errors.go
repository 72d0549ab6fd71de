package rollover_queue

import "errors"

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("rollover_queue: invalid date format")

	// ErrConflict очередь дня занята, операцию можно повторить
	ErrConflict = errors.New("rollover_queue: day queue is busy")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("rollover_queue: internal error")
)
