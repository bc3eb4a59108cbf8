package create_booking

import (
	"context"
	"time"

	"github.com/atlab/booking-service/internal/domain"
)

// BookingRepository интерфейс хранилища записей бронирований
// Контракт хранилища минимален: снапшот, добавление, полная перезапись.
type BookingRepository interface {
	Load(ctx context.Context) ([]*domain.Booking, error)
	Append(ctx context.Context, b *domain.Booking) error
	Overwrite(ctx context.Context, all []*domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConfirmationSender коллаборатор отправки подтверждений
// Доставка писем вне ядра: ошибка отправки логируется и не отменяет запись
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, email, name, slotLabel string, location domain.Location) error
}

// Lab расписание работы лабораторий, из конфигурации
type Lab struct {
	Hours       map[domain.Location]domain.WeekHours
	HorizonDays int
	Timezone    *time.Location
}

// Eligibility предикаты допуска к записи, из конфигурации
type Eligibility struct {
	StudentIDPrefix string
	EmailSuffixes   []string
	ExamNumbers     []string
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
