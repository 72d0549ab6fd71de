package catalog

import "errors"

var (
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrServiceAlreadyExists услуга с таким именем уже есть
	ErrServiceAlreadyExists = errors.New("catalog.repository: service already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
