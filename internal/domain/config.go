package domain

import (
	"time"

	"github.com/m04kA/SMC-TurnosService/pkg/types"
)

// BusinessConfig represents the singleton configuration of the service counter
type BusinessConfig struct {
	BusinessName        string
	LogoURL             *string
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotIntervalMinutes int
	VoiceEnabled        bool
	VoiceVolume         float64 // 0..1
	NoShowWaitMinutes   int     // 0 = авто-отмена выключена
	ResetDaily          bool    // нумерация и очередь привязаны к дню, флаг хранится для табло
	UpdatedAt           time.Time
}

// DefaultBusinessConfig конфигурация, создаваемая при первом обновлении или seed
func DefaultBusinessConfig() *BusinessConfig {
	return &BusinessConfig{
		BusinessName:        DefaultBusinessName,
		OpenTime:            types.MustTimeString(DefaultOpenTime),
		CloseTime:           types.MustTimeString(DefaultCloseTime),
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
		VoiceEnabled:        true,
		VoiceVolume:         DefaultVoiceVolume,
		NoShowWaitMinutes:   DefaultNoShowWaitMinutes,
		ResetDaily:          true,
	}
}

// HasOpenHours returns true if the configured day has at least one slot
func (c *BusinessConfig) HasOpenHours() bool {
	return c.SlotIntervalMinutes > 0 && c.OpenTime.IsBefore(c.CloseTime)
}

// NoShowEnabled returns true if called tickets are auto-cancelled after a wait
func (c *BusinessConfig) NoShowEnabled() bool {
	return c.NoShowWaitMinutes > 0
}

// BusinessConfigUpdate частичное обновление конфигурации, nil - поле не меняется
type BusinessConfigUpdate struct {
	BusinessName        *string
	LogoURL             *string
	OpenTime            *types.TimeString
	CloseTime           *types.TimeString
	SlotIntervalMinutes *int
	VoiceEnabled        *bool
	VoiceVolume         *float64
	NoShowWaitMinutes   *int
	ResetDaily          *bool
}

// Apply накладывает обновление на конфигурацию
func (u BusinessConfigUpdate) Apply(c *BusinessConfig) {
	if u.BusinessName != nil {
		c.BusinessName = *u.BusinessName
	}
	if u.LogoURL != nil {
		c.LogoURL = u.LogoURL
	}
	if u.OpenTime != nil {
		c.OpenTime = *u.OpenTime
	}
	if u.CloseTime != nil {
		c.CloseTime = *u.CloseTime
	}
	if u.SlotIntervalMinutes != nil {
		c.SlotIntervalMinutes = *u.SlotIntervalMinutes
	}
	if u.VoiceEnabled != nil {
		c.VoiceEnabled = *u.VoiceEnabled
	}
	if u.VoiceVolume != nil {
		c.VoiceVolume = *u.VoiceVolume
	}
	if u.NoShowWaitMinutes != nil {
		c.NoShowWaitMinutes = *u.NoShowWaitMinutes
	}
	if u.ResetDaily != nil {
		c.ResetDaily = *u.ResetDaily
	}
}
