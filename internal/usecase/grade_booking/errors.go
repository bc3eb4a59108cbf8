package grade_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("grade_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("grade_booking: booking not found")

	// ErrDataIntegrity возвращается при порче данных хранилища
	ErrDataIntegrity = errors.New("grade_booking: corrupted booking data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("grade_booking: internal error")
)
