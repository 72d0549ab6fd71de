package models

import (
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// Request модели

// ListTicketsRequest фильтр списка тикетов; пустые поля не фильтруют
type ListTicketsRequest struct {
	Date    *string `json:"date,omitempty"` // "2024-05-07", день приема
	State   *string `json:"state,omitempty"`
	Channel *string `json:"channel,omitempty"`
}

// UpdateStateRequest запрос на смену состояния
type UpdateStateRequest struct {
	State string  `json:"state"`
	Notes *string `json:"notes,omitempty"`
}

// ValidateQRRequest содержимое отсканированного QR
type ValidateQRRequest struct {
	QRData string `json:"qrData"`
}

// Response модели

// TicketResponse ответ с данными тикета
type TicketResponse struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"` // "0705-001"
	ClientName    string     `json:"clientName"`
	Phone         *string    `json:"phone,omitempty"`
	ServiceName   string     `json:"serviceName"`
	AppointmentAt time.Time  `json:"appointmentAt"`
	State         string     `json:"state"`
	Channel       string     `json:"channel"`
	QRPayload     *string    `json:"qrPayload,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CalledAt      *time.Time `json:"calledAt,omitempty"`
	AttendedAt    *time.Time `json:"attendedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TicketListResponse ответ со списком тикетов
type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

// UpdateStateResponse результат смены состояния.
// Announcement заполняется, когда тикет только что перешел в called.
type UpdateStateResponse struct {
	Ticket       TicketResponse `json:"ticket"`
	Changed      bool           `json:"changed"`
	Announcement *string        `json:"announcement,omitempty"`
}

// StatisticsResponse счетчики тикетов дня по состояниям
type StatisticsResponse struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Called    int    `json:"called"`
	Attended  int    `json:"attended"`
	Cancelled int    `json:"cancelled"`
}

// ValidateQRResponse тикет, найденный по QR
type ValidateQRResponse struct {
	Valid  bool           `json:"valid"`
	Ticket TicketResponse `json:"ticket"`
}

// Методы конвертации

// FromDomainTicket конвертирует domain модель в DTO
func FromDomainTicket(t *domain.Ticket) *TicketResponse {
	if t == nil {
		return nil
	}

	return &TicketResponse{
		ID:            t.ID,
		Code:          t.Code,
		ClientName:    t.ClientName,
		Phone:         t.Phone,
		ServiceName:   t.ServiceName,
		AppointmentAt: t.AppointmentAt,
		State:         string(t.State),
		Channel:       string(t.Channel),
		QRPayload:     t.QRPayload,
		Notes:         t.Notes,
		CalledAt:      t.CalledAt,
		AttendedAt:    t.AttendedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// FromDomainTicketList конвертирует список domain моделей в DTO
func FromDomainTicketList(tickets []*domain.Ticket) *TicketListResponse {
	resp := &TicketListResponse{
		Tickets: make([]TicketResponse, 0, len(tickets)),
	}

	for _, t := range tickets {
		if ticketResp := FromDomainTicket(t); ticketResp != nil {
			resp.Tickets = append(resp.Tickets, *ticketResp)
		}
	}

	return resp
}

// FromDomainStatistics конвертирует счетчики в DTO
func FromDomainStatistics(s domain.Statistics) *StatisticsResponse {
	return &StatisticsResponse{
		Date:      s.Date.Format(domain.DateFormat),
		Total:     s.Total,
		Pending:   s.Pending,
		Called:    s.Called,
		Attended:  s.Attended,
		Cancelled: s.Cancelled,
	}
}
