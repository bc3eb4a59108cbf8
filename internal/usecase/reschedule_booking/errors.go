package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrSlotNotInSchedule возвращается, когда целевой слот не входит
	// в сгенерированное расписание
	ErrSlotNotInSchedule = errors.New("reschedule_booking: slot is not in the schedule")

	// ErrSlotNotAvailable возвращается, когда целевой слот занят другим
	// бронированием или не в будущем. Собственные слоты переносимого
	// бронирования считаются свободными для него самого
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrSameDayLockout возвращается при попытке перенести бронирование,
	// назначенное на сегодня
	ErrSameDayLockout = errors.New("reschedule_booking: cannot modify a same-day appointment")

	// ErrDataIntegrity возвращается, когда состав группы бронирования
	// нарушен (у DSPS-пары отсутствует вторая строка) или строки хранилища
	// не читаются. Операция не применяется даже частично
	ErrDataIntegrity = errors.New("reschedule_booking: corrupted booking data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
