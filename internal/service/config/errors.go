package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация еще не создана
	ErrConfigNotFound = errors.New("config: config not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("config: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("config: internal error")
)
