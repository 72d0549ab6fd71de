package models

import (
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/pkg/types"
)

// Request модели

// UpdateConfigRequest частичное обновление конфигурации.
// Все поля опциональны - обновляются только переданные значения.
type UpdateConfigRequest struct {
	BusinessName        *string           `json:"businessName,omitempty"`
	LogoURL             *string           `json:"logoUrl,omitempty"`
	OpenTime            *types.TimeString `json:"openTime,omitempty"`  // "08:00"
	CloseTime           *types.TimeString `json:"closeTime,omitempty"` // "18:00"
	SlotIntervalMinutes *int              `json:"slotIntervalMinutes,omitempty"`
	VoiceEnabled        *bool             `json:"voiceEnabled,omitempty"`
	VoiceVolume         *float64          `json:"voiceVolume,omitempty"` // 0..1
	NoShowWaitMinutes   *int              `json:"noShowWaitMinutes,omitempty"`
	ResetDaily          *bool             `json:"resetDaily,omitempty"`
}

// ToDomainUpdate конвертирует запрос в domain обновление
func (r *UpdateConfigRequest) ToDomainUpdate() domain.BusinessConfigUpdate {
	return domain.BusinessConfigUpdate{
		BusinessName:        r.BusinessName,
		LogoURL:             r.LogoURL,
		OpenTime:            r.OpenTime,
		CloseTime:           r.CloseTime,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		VoiceEnabled:        r.VoiceEnabled,
		VoiceVolume:         r.VoiceVolume,
		NoShowWaitMinutes:   r.NoShowWaitMinutes,
		ResetDaily:          r.ResetDaily,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией точки обслуживания
type ConfigResponse struct {
	BusinessName        string           `json:"businessName"`
	LogoURL             *string          `json:"logoUrl,omitempty"`
	OpenTime            types.TimeString `json:"openTime"`
	CloseTime           types.TimeString `json:"closeTime"`
	SlotIntervalMinutes int              `json:"slotIntervalMinutes"`
	VoiceEnabled        bool             `json:"voiceEnabled"`
	VoiceVolume         float64          `json:"voiceVolume"`
	NoShowWaitMinutes   int              `json:"noShowWaitMinutes"`
	ResetDaily          bool             `json:"resetDaily"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BusinessConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		BusinessName:        c.BusinessName,
		LogoURL:             c.LogoURL,
		OpenTime:            c.OpenTime,
		CloseTime:           c.CloseTime,
		SlotIntervalMinutes: c.SlotIntervalMinutes,
		VoiceEnabled:        c.VoiceEnabled,
		VoiceVolume:         c.VoiceVolume,
		NoShowWaitMinutes:   c.NoShowWaitMinutes,
		ResetDaily:          c.ResetDaily,
		UpdatedAt:           c.UpdatedAt,
	}
}
