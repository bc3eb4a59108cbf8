package reschedule_booking

import (
	"context"
	"time"

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

// Lab расписание работы лабораторий, из конфигурации
type Lab struct {
	Hours       map[domain.Location]domain.WeekHours
	HorizonDays int
	Timezone    *time.Location
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
