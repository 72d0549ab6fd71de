package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TurnosService/pkg/ptr"
	"github.com/m04kA/SMC-TurnosService/pkg/types"
)

func TestDefaultBusinessConfig(t *testing.T) {
	cfg := DefaultBusinessConfig()

	assert.Equal(t, "08:00", cfg.OpenTime.String())
	assert.Equal(t, "18:00", cfg.CloseTime.String())
	assert.Equal(t, 30, cfg.SlotIntervalMinutes)
	assert.True(t, cfg.VoiceEnabled)
	assert.InDelta(t, 0.8, cfg.VoiceVolume, 1e-9)
	assert.True(t, cfg.HasOpenHours())
	assert.True(t, cfg.NoShowEnabled())
}

func TestBusinessConfigUpdate_Apply(t *testing.T) {
	cfg := DefaultBusinessConfig()

	BusinessConfigUpdate{
		BusinessName: ptr.Ptr("Notaría Central"),
		CloseTime:    ptr.Ptr(types.MustTimeString("08:00")),
		VoiceEnabled: ptr.Ptr(false),
	}.Apply(cfg)

	assert.Equal(t, "Notaría Central", cfg.BusinessName)
	assert.Equal(t, "08:00", cfg.OpenTime.String())
	assert.False(t, cfg.VoiceEnabled)
	assert.False(t, cfg.HasOpenHours())
	assert.Equal(t, 30, cfg.SlotIntervalMinutes)
}

func TestQRPayload_RoundTrip(t *testing.T) {
	ticket := &Ticket{Code: "0705-003", ClientName: "Ana", ServiceName: "Pagos"}

	raw, err := NewQRPayload(ticket).Encode()
	assert.NoError(t, err)

	p, err := DecodeQRPayload(raw)
	assert.NoError(t, err)
	assert.Equal(t, "0705-003", p.Code)

	_, err = DecodeQRPayload(`{"clientName":"Ana"}`)
	assert.ErrorIs(t, err, ErrInvalidQRPayload)

	_, err = DecodeQRPayload("not json")
	assert.ErrorIs(t, err, ErrInvalidQRPayload)
}

func TestNewAnnouncement(t *testing.T) {
	ticket := &Ticket{ID: 5, Code: "0705-002", ClientName: "Luis", ServiceName: "Pagos"}
	cfg := DefaultBusinessConfig()
	cfg.VoiceEnabled = false

	a := NewAnnouncement(ticket, cfg)

	assert.Equal(t, "Turno 0705-002, Luis, acérquese por favor. Servicio: Pagos", a.Message)
	assert.False(t, a.VoiceEnabled)
	assert.True(t, NewAnnouncement(ticket, nil).VoiceEnabled)
}
