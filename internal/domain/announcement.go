package domain

import (
	"fmt"
	"time"
)

// Announcement payload produced when a ticket is called
type Announcement struct {
	TicketID     int64     `json:"ticketId"`
	Code         string    `json:"code"`
	ClientName   string    `json:"clientName"`
	ServiceName  string    `json:"serviceName"`
	Message      string    `json:"message"`
	VoiceEnabled bool      `json:"voiceEnabled"`
	VoiceVolume  float64   `json:"voiceVolume"`
	CalledAt     time.Time `json:"calledAt"`
}

// NewAnnouncement собирает сообщение для табло и голосового оповещения.
// cfg может быть nil, тогда голос включен с громкостью по умолчанию.
func NewAnnouncement(t *Ticket, cfg *BusinessConfig) Announcement {
	a := Announcement{
		TicketID:     t.ID,
		Code:         t.Code,
		ClientName:   t.ClientName,
		ServiceName:  t.ServiceName,
		Message:      FormatAnnouncement(t),
		VoiceEnabled: true,
		VoiceVolume:  DefaultVoiceVolume,
	}
	if t.CalledAt != nil {
		a.CalledAt = *t.CalledAt
	}
	if cfg != nil {
		a.VoiceEnabled = cfg.VoiceEnabled
		a.VoiceVolume = cfg.VoiceVolume
	}
	return a
}

// FormatAnnouncement текст вызова
func FormatAnnouncement(t *Ticket) string {
	return fmt.Sprintf("Turno %s, %s, acérquese por favor. Servicio: %s", t.Code, t.ClientName, t.ServiceName)
}
