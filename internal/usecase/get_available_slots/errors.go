package get_available_slots

import "errors"

var (
	// ErrUnknownLocation возвращается, когда локация не настроена
	ErrUnknownLocation = errors.New("get_available_slots: unknown lab location")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrDataIntegrity возвращается, когда сохраненные бронирования
	// не читаются как валидные слоты: порча хранилища, а не
	// «занято» и не «в прошлом»
	ErrDataIntegrity = errors.New("get_available_slots: corrupted booking data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
