package get_availability

import (
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	getAvailability "github.com/m04kA/SMC-TurnosService/internal/usecase/get_availability"
)

// SlotResponse слот приема
type SlotResponse struct {
	Time   string `json:"time"` // "08:30"
	IsFree bool   `json:"isFree"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date  string         `json:"date"` // "2024-05-07"
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			Time:   slot.Time.Format(domain.TimeFormat),
			IsFree: slot.IsFree,
		})
	}

	return result
}
