package get_availability

import (
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	Date string // "2024-05-07"
}

// Response модель ответа со слотами дня
type Response struct {
	Date  time.Time     // Полночь запрошенного дня в часовом поясе календаря
	Slots []domain.Slot // Слоты по возрастанию времени
}
