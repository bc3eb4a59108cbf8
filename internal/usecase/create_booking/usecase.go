package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/atlab/booking-service/internal/domain"
	bookingRepo "github.com/atlab/booking-service/internal/infra/storage/booking"
)

// UseCase use case создания бронирования
// Решение принимается по свежему снапшоту журнала внутри сериализуемой
// транзакции: проигравший гонку запрос получает отказ, а не двойную запись
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	confirmation ConfirmationSender
	lab          Lab
	eligibility  Eligibility
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	confirmation ConfirmationSender,
	lab Lab,
	eligibility Eligibility,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		confirmation: confirmation,
		lab:          lab,
		eligibility:  eligibility,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Правила:
//   - выбор должен быть одиночным доступным слотом (или доступным сдвоенным
//     блоком для DSPS) из сгенерированного расписания;
//   - одна запись на (email, exam) в календарную неделю: существующие
//     бронирования той же недели заменяются новым выбором атомарно;
//   - бронирование, назначенное на сегодня, заменить нельзя: отказ без
//     каких-либо мутаций.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, exam=%s, location=%s, date=%s, time=%s, dsps=%t",
		req.Email, req.Exam, req.Location, req.Date.Format(domain.DateFormat), req.StartTime, req.DSPS)

	// 1. Валидация формы запроса и допуска
	if err := validateRequest(req, uc.eligibility); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	hours, ok := uc.lab.Hours[req.Location]
	if !ok {
		uc.logger.Warn("CreateBooking: unknown location %q", req.Location)
		return nil, ErrUnknownLocation
	}

	// 2. Текущее время в часовом поясе лаборатории
	now := uc.timeProvider.Now().In(uc.lab.Timezone)

	// 3. Находим выбор в сгенерированном расписании
	schedule := domain.GenerateSchedule(
		map[domain.Location]domain.WeekHours{req.Location: hours},
		now,
		uc.lab.HorizonDays,
	)
	selection, err := resolveSelection(schedule[req.Location], req)
	if err != nil {
		uc.logger.Warn("CreateBooking: selection rejected: %v", err)
		return nil, err
	}

	week := domain.WeekWindowOf(selection[0].Start)
	groupID := uuid.NewString()
	replaced := false

	// 4. Решение и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Свежий снапшот журнала
		snapshot, err := uc.bookingRepo.Load(txCtx)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrCorruptedRow) {
				uc.logger.Error("CreateBooking: corrupted booking data: %v", err)
				return fmt.Errorf("%w: %v", ErrDataIntegrity, err)
			}
			uc.logger.Error("CreateBooking: failed to load bookings: %v", err)
			return fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
		}

		// 4.2. Доступность каждого слота выбора
		booked := newBookedSet(snapshot)
		for _, slot := range selection {
			if !isAvailable(slot, booked, now) {
				uc.logger.Warn("CreateBooking: slot %s not available", slot.Label())
				return ErrSlotNotAvailable
			}
		}

		// 4.3. Конфликты той же недели для (email, exam)
		conflicts := conflictRows(snapshot, req.Email, req.Exam, week)

		// 4.4. Лишение права менять запись в день приема
		for _, row := range conflicts {
			if isSameDay(row.Slot.Start, now) {
				uc.logger.Warn("CreateBooking: same-day lockout for email=%s, exam=%s", req.Email, req.Exam)
				return ErrSameDayLockout
			}
		}

		newRows := uc.buildRows(req, selection, groupID)

		// 4.5. Замена или вставка
		if len(conflicts) > 0 {
			replaced = true
			next := append(withoutRows(snapshot, conflicts), newRows...)
			if err := uc.bookingRepo.Overwrite(txCtx, next); err != nil {
				uc.logger.Error("CreateBooking: overwrite failed: %v", err)
				return fmt.Errorf("%w: overwrite failed: %v", ErrInternal, err)
			}
			return nil
		}

		for _, row := range newRows {
			if err := uc.bookingRepo.Append(txCtx, row); err != nil {
				uc.logger.Error("CreateBooking: append failed: %v", err)
				return fmt.Errorf("%w: append failed: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(selection))
	for i, slot := range selection {
		labels[i] = slot.Label()
	}
	label := strings.Join(labels, " and ")

	uc.logger.Info("CreateBooking: booked group=%s, email=%s, exam=%s, slots=%s, replaced=%t",
		groupID, req.Email, req.Exam, label, replaced)

	// 5. Подтверждение best effort, вне транзакции
	if uc.confirmation != nil {
		if err := uc.confirmation.SendConfirmation(ctx, req.Email, req.Name, label, req.Location); err != nil {
			uc.logger.Warn("CreateBooking: confirmation email failed for %s: %v", req.Email, err)
		}
	}

	return &Response{
		GroupID:    groupID,
		Location:   req.Location,
		Exam:       req.Exam,
		DSPS:       req.DSPS,
		SlotLabels: labels,
		Label:      label,
		Replaced:   replaced,
	}, nil
}

// buildRows собирает строки журнала для выбора: одна для обычной записи,
// две с общим groupID для DSPS
func (uc *UseCase) buildRows(req *Request, selection []domain.Slot, groupID string) []*domain.Booking {
	rows := make([]*domain.Booking, len(selection))
	for i, slot := range selection {
		rows[i] = &domain.Booking{
			GroupID:   groupID,
			Name:      req.Name,
			Email:     req.Email,
			StudentID: req.StudentID,
			DSPS:      req.DSPS,
			Slot:      slot,
			Exam:      req.Exam,
		}
	}
	return rows
}
