package create_ticket

import "github.com/m04kA/SMC-TurnosService/internal/domain"

// Request модель запроса на создание тикета
type Request struct {
	ClientName    string  // Имя клиента, обязательно
	Phone         *string // Телефон (опционально)
	ServiceName   string  // Услуга, свободный текст
	AppointmentAt string  // "2024-05-07" или "2024-05-07T08:30[:00][Z|+03:00]"
	Channel       string  // "qr" | "manual"
	Notes         *string // Заметки (опционально)
}

// Response модель ответа с созданным тикетом
type Response struct {
	Ticket        *domain.Ticket
	QueuePosition *int // nil, если прием не сегодня
}
