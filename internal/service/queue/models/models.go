package models

import (
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	ticketModels "github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
)

// QueueEntryResponse запись очереди с тикетом
type QueueEntryResponse struct {
	ID        int64                        `json:"id"`
	TicketID  int64                        `json:"ticketId"`
	Position  int                          `json:"position"`
	Day       string                       `json:"day"` // "2024-05-07"
	CreatedAt time.Time                    `json:"createdAt"`
	Ticket    *ticketModels.TicketResponse `json:"ticket,omitempty"`
}

// QueueResponse очередь дня по возрастанию позиции
type QueueResponse struct {
	Date    string               `json:"date"`
	Entries []QueueEntryResponse `json:"entries"`
}

// FromDomainQueueEntry конвертирует запись очереди в DTO.
// day передается отдельно: колонка DATE возвращается без часового пояса календаря.
func FromDomainQueueEntry(e *domain.QueueEntry, day string) *QueueEntryResponse {
	if e == nil {
		return nil
	}

	return &QueueEntryResponse{
		ID:        e.ID,
		TicketID:  e.TicketID,
		Position:  e.Position,
		Day:       day,
		CreatedAt: e.CreatedAt,
		Ticket:    ticketModels.FromDomainTicket(e.Ticket),
	}
}

// FromDomainQueue конвертирует очередь дня в DTO
func FromDomainQueue(entries []*domain.QueueEntry, day string) *QueueResponse {
	resp := &QueueResponse{
		Date:    day,
		Entries: make([]QueueEntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		if entryResp := FromDomainQueueEntry(e, day); entryResp != nil {
			resp.Entries = append(resp.Entries, *entryResp)
		}
	}

	return resp
}
