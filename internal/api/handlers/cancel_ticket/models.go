package cancel_ticket

// CancelTicketRequest HTTP request model, тело необязательно
type CancelTicketRequest struct {
	Reason *string `json:"reason,omitempty"`
}
