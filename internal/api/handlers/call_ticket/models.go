package call_ticket

import (
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	ticketModels "github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
	callTicket "github.com/m04kA/SMC-TurnosService/internal/usecase/call_ticket"
)

// CallTicketResponse HTTP response model
type CallTicketResponse struct {
	Ticket              ticketModels.TicketResponse `json:"ticket"`
	AnnouncementMessage string                      `json:"announcementMessage"`
	Announcement        domain.Announcement         `json:"announcement"`
	Recall              bool                        `json:"recall"`
	Position            *int                        `json:"position,omitempty"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *callTicket.Response) *CallTicketResponse {
	return &CallTicketResponse{
		Ticket:              *ticketModels.FromDomainTicket(resp.Ticket),
		AnnouncementMessage: resp.Announcement.Message,
		Announcement:        resp.Announcement,
		Recall:              resp.Recall,
		Position:            resp.Position,
	}
}
