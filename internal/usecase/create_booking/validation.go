package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/atlab/booking-service/internal/domain"
)

// validateRequest валидирует форму запроса и предикаты допуска
func validateRequest(req *Request, elig Eligibility) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.StudentID) == "" {
		return fmt.Errorf("%w: studentId is required", ErrInvalidInput)
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

	if !domain.IsValidEmail(req.Email, elig.EmailSuffixes) {
		return fmt.Errorf("%w: email must end with %s", ErrNotEligible, strings.Join(elig.EmailSuffixes, " or "))
	}
	if !domain.IsValidStudentID(req.StudentID, elig.StudentIDPrefix) {
		return fmt.Errorf("%w: student ID must start with %s", ErrNotEligible, elig.StudentIDPrefix)
	}
	if !domain.IsValidExam(req.Exam, elig.ExamNumbers) {
		return fmt.Errorf("%w: unknown exam number %q", ErrNotEligible, req.Exam)
	}

	return nil
}

// resolveSelection находит запрошенный выбор в сгенерированном расписании.
// Для обычной записи это один слот, для DSPS сдвоенный блок, начинающийся
// с запрошенного слота. Выбор вне расписания отвергается.
func resolveSelection(schedule []domain.DaySlots, req *Request) ([]domain.Slot, error) {
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

			if !req.DSPS {
				return []domain.Slot{slot}, nil
			}

			// DSPS: нужен сосед сразу после выбранного слота
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
