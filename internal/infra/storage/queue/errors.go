package queue

import "errors"

var (
	// ErrEntryNotFound в очереди нет подходящей записи
	ErrEntryNotFound = errors.New("queue.repository: entry not found")

	// ErrDuplicatePosition позиция дня уже занята
	ErrDuplicatePosition = errors.New("queue.repository: duplicate position for day")

	// ErrAlreadyQueued тикет уже стоит в очереди этого дня
	ErrAlreadyQueued = errors.New("queue.repository: ticket already queued for day")

	// ErrLockTimeout не удалось получить блокировку очереди дня
	ErrLockTimeout = errors.New("queue.repository: day lock timeout")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("queue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("queue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("queue.repository: failed to scan row")
)
