package grade_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atlab/booking-service/internal/domain"
	bookingRepo "github.com/atlab/booking-service/internal/infra/storage/booking"
)

// Request модель запроса на выставление оценки
type Request struct {
	GroupID  string // Идентификатор бронирования
	Grade    string // Оценка
	GradedBy string // Инициалы преподавателя
}

// Response модель ответа с оцененным бронированием
type Response struct {
	GroupID  string
	Email    string
	Exam     string
	Grade    string
	GradedBy string
}

// UseCase use case выставления оценки за практический экзамен
// Оценка не взаимодействует ни с доступностью, ни с правилами конфликтов:
// меняются только поля grade и graded_by строк группы
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case выставления оценки
// DSPS-пара оценивается как единое целое: оценка пишется в обе строки группы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GradeBooking: group=%s, grade=%s, gradedBy=%s", req.GroupID, req.Grade, req.GradedBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GradeBooking: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		snapshot, err := uc.bookingRepo.Load(txCtx)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrCorruptedRow) {
				uc.logger.Error("GradeBooking: corrupted booking data: %v", err)
				return fmt.Errorf("%w: %v", ErrDataIntegrity, err)
			}
			uc.logger.Error("GradeBooking: failed to load bookings: %v", err)
			return fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
		}

		group := domain.SiblingRows(snapshot, req.GroupID)
		if len(group) == 0 {
			uc.logger.Warn("GradeBooking: group %s not found", req.GroupID)
			return ErrBookingNotFound
		}

		for _, row := range group {
			grade := req.Grade
			gradedBy := req.GradedBy
			row.Grade = &grade
			row.GradedBy = &gradedBy
		}

		if err := uc.bookingRepo.Overwrite(txCtx, snapshot); err != nil {
			uc.logger.Error("GradeBooking: overwrite failed: %v", err)
			return fmt.Errorf("%w: overwrite failed: %v", ErrInternal, err)
		}

		resp = &Response{
			GroupID:  req.GroupID,
			Email:    group[0].Email,
			Exam:     group[0].Exam,
			Grade:    req.Grade,
			GradedBy: req.GradedBy,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GradeBooking: group=%s graded %s by %s", req.GroupID, req.Grade, req.GradedBy)
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.GroupID) == "" {
		return fmt.Errorf("%w: groupId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Grade) == "" {
		return fmt.Errorf("%w: grade is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.GradedBy) == "" {
		return fmt.Errorf("%w: gradedBy is required", ErrInvalidInput)
	}
	return nil
}
