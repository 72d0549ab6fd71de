package create_ticket

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_ticket: invalid input data")

	// ErrInvalidAppointment время приема не распознано
	ErrInvalidAppointment = errors.New("create_ticket: invalid appointment time")

	// ErrConflict параллельная выдача не завершилась за отведенное число попыток
	ErrConflict = errors.New("create_ticket: concurrent creation conflict, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_ticket: internal error")
)
