package get_available_slots

import (
	"context"
	"time"

	"github.com/atlab/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Load возвращает полный снапшот журнала бронирований
	Load(ctx context.Context) ([]*domain.Booking, error)
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
