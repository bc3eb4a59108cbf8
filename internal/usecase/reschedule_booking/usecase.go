package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/atlab/booking-service/internal/domain"
	bookingRepo "github.com/atlab/booking-service/internal/infra/storage/booking"
)

// UseCase use case переноса бронирования персоналом
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	lab          Lab
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	lab Lab,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		lab:          lab,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
//
// Доступность целевого слота проверяется по снапшоту с исключением
// собственных слотов группы: текущий слот бронирования всегда «свободен»
// для него самого. Старые строки удаляются и новые вставляются одной
// перезаписью, промежуточного состояния не существует.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: group=%s, date=%s, time=%s",
		req.GroupID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.lab.Timezone)

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Свежий снапшот журнала
		snapshot, err := uc.bookingRepo.Load(txCtx)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrCorruptedRow) {
				uc.logger.Error("RescheduleBooking: corrupted booking data: %v", err)
				return fmt.Errorf("%w: %v", ErrDataIntegrity, err)
			}
			uc.logger.Error("RescheduleBooking: failed to load bookings: %v", err)
			return fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
		}

		// 3. Строки переносимой группы
		group := domain.SiblingRows(snapshot, req.GroupID)
		if len(group) == 0 {
			uc.logger.Warn("RescheduleBooking: group %s not found", req.GroupID)
			return ErrBookingNotFound
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Slot.Start.Before(group[j].Slot.Start) })

		primary := group[0]
		if err := validateGroupShape(group); err != nil {
			uc.logger.Error("RescheduleBooking: group %s: %v", req.GroupID, err)
			return err
		}

		// 4. Перенос в день приема запрещен
		for _, row := range group {
			if isSameDay(row.Slot.Start, now) {
				uc.logger.Warn("RescheduleBooking: same-day lockout for group %s", req.GroupID)
				return ErrSameDayLockout
			}
		}

		// 5. Целевой выбор в сгенерированном расписании той же локации
		hours, ok := uc.lab.Hours[primary.Location()]
		if !ok {
			uc.logger.Error("RescheduleBooking: booking location %q is not configured", primary.Location())
			return fmt.Errorf("%w: booking location %q is not configured", ErrDataIntegrity, primary.Location())
		}

		schedule := domain.GenerateSchedule(
			map[domain.Location]domain.WeekHours{primary.Location(): hours},
			now,
			uc.lab.HorizonDays,
		)
		selection, err := resolveSelection(schedule[primary.Location()], req, primary.DSPS)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: selection rejected: %v", err)
			return err
		}

		// 6. Доступность без учета собственных слотов группы
		booked := newBookedSet(withoutRows(snapshot, group))
		for _, slot := range selection {
			if booked.Contains(slot) || !slot.Start.After(now) {
				uc.logger.Warn("RescheduleBooking: slot %s not available", slot.Label())
				return ErrSlotNotAvailable
			}
		}

		// 7. Атомарная замена строк группы
		newRows := make([]*domain.Booking, len(selection))
		oldLabels := make([]string, len(group))
		for i, row := range group {
			oldLabels[i] = row.Slot.Label()
		}
		for i, slot := range selection {
			moved := *primary
			moved.ID = 0
			moved.Slot = slot
			newRows[i] = &moved
		}

		next := append(withoutRows(snapshot, group), newRows...)
		if err := uc.bookingRepo.Overwrite(txCtx, next); err != nil {
			uc.logger.Error("RescheduleBooking: overwrite failed: %v", err)
			return fmt.Errorf("%w: overwrite failed: %v", ErrInternal, err)
		}

		labels := make([]string, len(selection))
		for i, slot := range selection {
			labels[i] = slot.Label()
		}

		resp = &Response{
			GroupID:    req.GroupID,
			Location:   primary.Location(),
			Exam:       primary.Exam,
			DSPS:       primary.DSPS,
			OldLabels:  oldLabels,
			SlotLabels: labels,
			Label:      strings.Join(labels, " and "),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: group=%s moved to %s", req.GroupID, resp.Label)
	return resp, nil
}

// validateGroupShape проверяет согласованность строк группы
// DSPS-бронирование обязано состоять ровно из двух строк, обычное из одной;
// иное означает порчу хранилища, операция не применяется
func validateGroupShape(group []*domain.Booking) error {
	if group[0].DSPS {
		if len(group) != 2 {
			return fmt.Errorf("%w: dsps booking has %d rows, want 2", ErrDataIntegrity, len(group))
		}
		block := domain.DoubleBlock{First: group[0].Slot, Second: group[1].Slot}
		if !block.Contiguous() {
			return fmt.Errorf("%w: dsps rows are not a contiguous block", ErrDataIntegrity)
		}
		return nil
	}
	if len(group) != 1 {
		return fmt.Errorf("%w: booking has %d rows, want 1", ErrDataIntegrity, len(group))
	}
	return nil
}
