package get_available_slots

import (
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

// Contains проверяет, занят ли слот
func (s bookedSet) Contains(slot domain.Slot) bool {
	_, ok := s[slotKey(slot)]
	return ok
}

// availableSlots фильтрует слоты дня: слот доступен, если он не занят
// и его начало строго позже now
func availableSlots(daySlots []domain.Slot, booked bookedSet, now time.Time) []domain.Slot {
	available := make([]domain.Slot, 0, len(daySlots))
	for _, slot := range daySlots {
		if booked.Contains(slot) {
			continue
		}
		if !slot.Start.After(now) {
			continue
		}
		available = append(available, slot)
	}
	return available
}

// availableDoubleBlocks возвращает сдвоенные блоки, у которых ОБА слота
// проходят проверку доступности по отдельности
func availableDoubleBlocks(daySlots []domain.Slot, booked bookedSet, now time.Time) []domain.DoubleBlock {
	available := make([]domain.DoubleBlock, 0)
	for _, block := range domain.DoubleBlocksForDay(daySlots) {
		if booked.Contains(block.First) || booked.Contains(block.Second) {
			continue
		}
		if !block.First.Start.After(now) {
			continue
		}
		available = append(available, block)
	}
	return available
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
