package domain

// Default configuration values
const (
	DefaultBusinessName        = "Turnos"
	DefaultOpenTime            = "08:00"
	DefaultCloseTime           = "18:00"
	DefaultSlotIntervalMinutes = 30
	DefaultVoiceVolume         = 0.8
	DefaultNoShowWaitMinutes   = 30

	// DefaultAppointmentHour время приема, если в запросе передана только дата
	DefaultAppointmentHour = 9
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 480 // 8 hours
	MaxNoShowWaitMinutes   = 1440
	MaxClientNameLength    = 100
	MaxPhoneLength         = 20
	MaxServiceNameLength   = 100
	MaxNotesLength         = 500
	MaxBusinessNameLength  = 100
	QRHistoryLimit         = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStates состояния, занимающие слот в расписании
var ActiveStates = []TicketState{
	StatePending,
	StateCalled,
	StateAttended,
}
