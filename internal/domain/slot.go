package domain

import "time"

// Slot represents one appointment slot of a day
type Slot struct {
	Time   time.Time
	IsFree bool
}
