package domain

import "time"

// QueueEntry represents a ticket's FIFO position within one day's dispatch queue
type QueueEntry struct {
	ID        int64
	TicketID  int64
	Position  int       // 1..N внутри дня, не перенумеровывается
	Day       time.Time // полночь дня очереди в локации календаря
	CreatedAt time.Time

	Ticket *Ticket // заполняется при выборке с join
}
