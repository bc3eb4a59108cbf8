package mailer

import "errors"

var (
	// ErrInternal возвращается при ошибках построения или выполнения запроса
	ErrInternal = errors.New("mailer: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе почтового релея
	ErrInvalidResponse = errors.New("mailer: invalid relay response")
)
