package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidQRPayload содержимое QR не распознано
var ErrInvalidQRPayload = errors.New("domain: invalid qr payload")

// QRPayload данные, зашиваемые в QR-код тикета
type QRPayload struct {
	Code          string    `json:"code"`
	ClientName    string    `json:"clientName"`
	ServiceName   string    `json:"serviceName"`
	AppointmentAt time.Time `json:"appointmentAt"`
}

// NewQRPayload собирает payload из тикета с уже присвоенным кодом
func NewQRPayload(t *Ticket) QRPayload {
	return QRPayload{
		Code:          t.Code,
		ClientName:    t.ClientName,
		ServiceName:   t.ServiceName,
		AppointmentAt: t.AppointmentAt,
	}
}

// Encode сериализует payload в JSON
func (p QRPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidQRPayload, err)
	}
	return string(data), nil
}

// DecodeQRPayload разбирает payload. Код тикета обязателен.
func DecodeQRPayload(raw string) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return QRPayload{}, fmt.Errorf("%w: %v", ErrInvalidQRPayload, err)
	}
	if p.Code == "" {
		return QRPayload{}, fmt.Errorf("%w: code is empty", ErrInvalidQRPayload)
	}
	return p, nil
}
