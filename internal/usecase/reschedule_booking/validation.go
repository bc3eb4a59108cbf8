package reschedule_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/atlab/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.GroupID) == "" {
		return fmt.Errorf("%w: groupId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

// resolveSelection находит целевой выбор в расписании: один слот или,
// для DSPS, сдвоенный блок с повторной проверкой смежности
func resolveSelection(schedule []domain.DaySlots, req *Request, dsps bool) ([]domain.Slot, error) {
	startMins, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	for _, day := range schedule {
		if !isSameDay(day.Date, req.Date) {
			continue
		}

		for i, slot := range day.Slots {
			if minutesOfDay(slot.Start) != startMins {
				continue
			}

			if !dsps {
				return []domain.Slot{slot}, nil
			}

			if i+1 >= len(day.Slots) {
				return nil, fmt.Errorf("%w: no second slot for a double block", ErrSlotNotInSchedule)
			}
			block := domain.DoubleBlock{First: slot, Second: day.Slots[i+1]}
			if !block.Contiguous() {
				return nil, fmt.Errorf("%w: no contiguous double block at %s", ErrSlotNotInSchedule, req.StartTime)
			}
			return block.Slots(), nil
		}

		return nil, fmt.Errorf("%w: no slot at %s on %s", ErrSlotNotInSchedule, req.StartTime, day.Label())
	}

	return nil, fmt.Errorf("%w: date %s is outside the schedule", ErrSlotNotInSchedule, req.Date.Format(domain.DateFormat))
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

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
