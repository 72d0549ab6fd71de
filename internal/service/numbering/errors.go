package numbering

import "errors"

var (
	// ErrConflict префикс занят параллельной выдачей дольше таймаута, операцию можно повторить
	ErrConflict = errors.New("numbering: code prefix is busy")

	// ErrNotInTransaction NextCode вызван вне транзакции
	ErrNotInTransaction = errors.New("numbering: transaction required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("numbering: internal error")
)
