package get_availability

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// generateSlots слоты дня от открытия (включительно) до закрытия (не включительно) с шагом интервала.
// Последовательность ленивая и перезапускаемая: каждый проход заново считает слоты из аргументов.
// open >= close или нулевой интервал дают пустую последовательность.
func generateSlots(day time.Time, cfg *domain.BusinessConfig, occupied map[int64]struct{}) iter.Seq[domain.Slot] {
	return func(yield func(domain.Slot) bool) {
		if !cfg.HasOpenHours() {
			return
		}

		y, m, d := day.Date()
		loc := day.Location()
		for minute := cfg.OpenTime.Minutes(); minute < cfg.CloseTime.Minutes(); minute += cfg.SlotIntervalMinutes {
			// Переполнение минут нормализует time.Date
			instant := time.Date(y, m, d, 0, minute, 0, 0, loc)
			_, busy := occupied[minuteKey(instant)]
			if !yield(domain.Slot{Time: instant, IsFree: !busy}) {
				return
			}
		}
	}
}

// occupiedMinutes минуты приема тикетов дня; отмененные не занимают слот
func occupiedMinutes(tickets []*domain.Ticket) map[int64]struct{} {
	occupied := make(map[int64]struct{}, len(tickets))
	for _, t := range tickets {
		if t.IsCancelled() {
			continue
		}
		occupied[minuteKey(t.AppointmentAt)] = struct{}{}
	}
	return occupied
}

// minuteKey момент времени, усеченный до минуты
func minuteKey(t time.Time) int64 {
	return t.Truncate(time.Minute).Unix()
}
