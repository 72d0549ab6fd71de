package call_ticket

import "github.com/m04kA/SMC-TurnosService/internal/domain"

// Response результат вызова тикета
type Response struct {
	Ticket       *domain.Ticket
	Announcement domain.Announcement
	Recall       bool // тикет уже был в called, объявление повторено
	Position     *int // позиция в очереди, только для вызова следующего
}
