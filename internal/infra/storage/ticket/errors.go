package ticket

import "errors"

var (
	// ErrTicketNotFound возвращается, когда тикет не найден
	ErrTicketNotFound = errors.New("ticket.repository: ticket not found")

	// ErrDuplicateCode возвращается при нарушении уникальности кода
	ErrDuplicateCode = errors.New("ticket.repository: duplicate ticket code")

	// ErrLockTimeout не удалось получить блокировку нумерации
	ErrLockTimeout = errors.New("ticket.repository: code lock timeout")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ticket.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ticket.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ticket.repository: failed to scan row")
)
