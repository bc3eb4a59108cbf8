package grade_booking

import (
	"context"

	"github.com/atlab/booking-service/internal/domain"
)

// BookingRepository интерфейс хранилища записей бронирований
type BookingRepository interface {
	Load(ctx context.Context) ([]*domain.Booking, error)
	Overwrite(ctx context.Context, all []*domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
