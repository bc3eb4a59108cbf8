package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrNotEligible возвращается, когда студент не проходит проверки
	// допуска (префикс студенческого ID, домен почты, номер экзамена)
	ErrNotEligible = errors.New("create_booking: student is not eligible")

	// ErrUnknownLocation возвращается, когда локация не настроена
	ErrUnknownLocation = errors.New("create_booking: unknown lab location")

	// ErrSlotNotInSchedule возвращается, когда запрошенный слот не входит
	// в сгенерированное расписание (мимо рабочих часов или горизонта)
	ErrSlotNotInSchedule = errors.New("create_booking: slot is not in the schedule")

	// ErrSlotNotAvailable возвращается, когда слот или часть сдвоенного
	// блока уже заняты либо начало слота не в будущем
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSameDayLockout возвращается при попытке заменить бронирование,
	// назначенное на сегодня. Бизнес-правило, а не сбой: ничего не мутируется
	ErrSameDayLockout = errors.New("create_booking: cannot modify a same-day appointment")

	// ErrDataIntegrity возвращается при порче данных хранилища
	ErrDataIntegrity = errors.New("create_booking: corrupted booking data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
