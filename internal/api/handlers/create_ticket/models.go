package create_ticket

import (
	ticketModels "github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
	createTicket "github.com/m04kA/SMC-TurnosService/internal/usecase/create_ticket"
)

// CreateTicketRequest HTTP request model
type CreateTicketRequest struct {
	ClientName    string  `json:"clientName"`
	Phone         *string `json:"phone,omitempty"`
	ServiceName   string  `json:"serviceName"`
	AppointmentAt string  `json:"appointmentAt"` // "2024-05-07T08:30"
	Channel       string  `json:"channel"`       // "qr" | "manual"
	Notes         *string `json:"notes,omitempty"`
}

// CreateTicketResponse HTTP response model
type CreateTicketResponse struct {
	ticketModels.TicketResponse
	QueuePosition *int `json:"queuePosition,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTicketRequest) ToUseCaseRequest() *createTicket.Request {
	return &createTicket.Request{
		ClientName:    r.ClientName,
		Phone:         r.Phone,
		ServiceName:   r.ServiceName,
		AppointmentAt: r.AppointmentAt,
		Channel:       r.Channel,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *createTicket.Response) *CreateTicketResponse {
	return &CreateTicketResponse{
		TicketResponse: *ticketModels.FromDomainTicket(resp.Ticket),
		QueuePosition:  resp.QueuePosition,
	}
}
