package rollover_queue

import "time"

// Request модель запроса переноса записей дня в очередь
type Request struct {
	Date string // "2024-05-07", пусто - сегодня
}

// Response итог переноса
type Response struct {
	Date     time.Time
	Enqueued int // поставлено в очередь
	Skipped  int // уже стояли в очереди
}
