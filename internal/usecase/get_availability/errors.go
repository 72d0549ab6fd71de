package get_availability

import "errors"

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("get_availability: invalid date format")

	// ErrConfigMissing конфигурация точки обслуживания не создана
	ErrConfigMissing = errors.New("get_availability: business configuration is missing")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
