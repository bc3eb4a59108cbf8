package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/atlab/booking-service/internal/domain"
	bookingRepo "github.com/atlab/booking-service/internal/infra/storage/booking"
)

// UseCase use case для получения доступных слотов
// Расписание пересчитывается заново на каждый запрос из шаблона рабочих
// часов и текущей даты; сгенерированные слоты нигде не сохраняются.
type UseCase struct {
	bookingRepo  BookingRepository
	lab          Lab
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, lab Lab, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		lab:          lab,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: location=%s, date=%v, dsps=%t", req.Location, req.Date, req.DSPS)

	// 1. Валидация входных данных
	hours, ok := uc.lab.Hours[req.Location]
	if !ok {
		uc.logger.Warn("GetAvailableSlots: unknown location %q", req.Location)
		return nil, ErrUnknownLocation
	}

	// 2. Текущее время в часовом поясе лаборатории
	now := uc.timeProvider.Now().In(uc.lab.Timezone)

	// 3. Генерируем расписание на горизонт
	schedule := domain.GenerateSchedule(
		map[domain.Location]domain.WeekHours{req.Location: hours},
		now,
		uc.lab.HorizonDays,
	)

	// 4. Загружаем снапшот бронирований
	bookings, err := uc.bookingRepo.Load(ctx)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrCorruptedRow) {
			uc.logger.Error("GetAvailableSlots: corrupted booking data: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}
	booked := newBookedSet(bookings)

	// 5. Фильтруем по занятости и текущему времени
	days := make([]Day, 0)
	for _, daySlots := range schedule[req.Location] {
		if req.Date != nil && !isSameDay(daySlots.Date, *req.Date) {
			continue
		}

		day := Day{
			Date:  daySlots.Date,
			Label: daySlots.Label(),
		}

		if req.DSPS {
			for _, block := range availableDoubleBlocks(daySlots.Slots, booked, now) {
				day.Blocks = append(day.Blocks, newBlockView(block))
			}
			if len(day.Blocks) == 0 {
				continue
			}
		} else {
			for _, slot := range availableSlots(daySlots.Slots, booked, now) {
				day.Slots = append(day.Slots, newSlotView(slot))
			}
			if len(day.Slots) == 0 {
				continue
			}
		}

		days = append(days, day)
	}

	uc.logger.Info("GetAvailableSlots: location=%s, %d days with availability", req.Location, len(days))

	return &Response{
		Location: req.Location,
		Days:     days,
	}, nil
}
