package create_booking

import (
	"strings"
	"time"

	"github.com/atlab/booking-service/internal/domain"
)

// bookedSet множество занятых интервалов для проверки членства
type bookedSet map[string]struct{}

func slotKey(s domain.Slot) string {
	return string(s.Location) + "|" + s.Start.Format(time.RFC3339)
}

func newBookedSet(bookings []*domain.Booking) bookedSet {
	set := make(bookedSet, len(bookings))
	for _, b := range bookings {
		set[slotKey(b.Slot)] = struct{}{}
	}
	return set
}

func (s bookedSet) Contains(slot domain.Slot) bool {
	_, ok := s[slotKey(slot)]
	return ok
}

// isAvailable проверяет доступность одного слота: не занят и строго в будущем
func isAvailable(slot domain.Slot, booked bookedSet, now time.Time) bool {
	return !booked.Contains(slot) && slot.Start.After(now)
}

// conflictRows находит существующие бронирования с тем же (email, exam),
// чья дата попадает в ту же календарную неделю, что и выбор.
// Недельное правило скоупится на пару (email, exam); несколько
// конфликтующих строк (рассинхрон данных) не спецкейсятся, в ветке замены
// выбрасываются все.
func conflictRows(snapshot []*domain.Booking, email, exam string, week domain.WeekWindow) []*domain.Booking {
	key := domain.BookingKey{Email: strings.ToLower(email), Exam: exam}

	var conflicts []*domain.Booking
	for _, row := range snapshot {
		if row.Key() != key {
			continue
		}
		if row.WeekOf() != week {
			continue
		}
		conflicts = append(conflicts, row)
	}
	return conflicts
}

// withoutRows возвращает снапшот без указанных строк (сравнение по указателю)
func withoutRows(snapshot, remove []*domain.Booking) []*domain.Booking {
	drop := make(map[*domain.Booking]struct{}, len(remove))
	for _, row := range remove {
		drop[row] = struct{}{}
	}

	kept := make([]*domain.Booking, 0, len(snapshot))
	for _, row := range snapshot {
		if _, ok := drop[row]; ok {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
