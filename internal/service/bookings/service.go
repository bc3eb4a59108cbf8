package bookings

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/atlab/booking-service/internal/domain"
	bookingRepo "github.com/atlab/booking-service/internal/infra/storage/booking"
	"github.com/atlab/booking-service/internal/service/bookings/models"
)

// exportHeader колонки CSV-выгрузки, в порядке исходного журнала
var exportHeader = []string{
	"name", "email", "student_id", "dsps", "slot", "lab_location", "exam_number", "grade", "graded_by",
}

// Service сервис чтения журнала бронирований для панели персонала
type Service struct {
	bookingRepo  BookingRepository
	timezone     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(bookingRepo BookingRepository, timezone *time.Location, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timezone:     timezone,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetStudentBookings возвращает бронирования студента по email
func (s *Service) GetStudentBookings(ctx context.Context, email string) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudentBookings: email=%s", email)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	list, err := s.bookingRepo.List(ctx, domain.BookingsFilter{Email: &email})
	if err != nil {
		return nil, s.repoError("GetStudentBookings", err)
	}

	return models.FromDomainBookingList(list), nil
}

// GetLabBookings возвращает бронирования по фильтру (локация, период)
func (s *Service) GetLabBookings(ctx context.Context, req *models.GetLabBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetLabBookings: location=%v, from=%v, to=%v", req.Location, req.StartDate, req.EndDate)

	list, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, s.repoError("GetLabBookings", err)
	}

	return models.FromDomainBookingList(list), nil
}

// GetTodayBookings возвращает сегодняшние бронирования локации,
// отсортированные по времени начала
func (s *Service) GetTodayBookings(ctx context.Context, location domain.Location) (*models.BookingListResponse, error) {
	today := s.today()
	s.logger.Info("GetTodayBookings: location=%s, date=%s", location, today.Format(domain.DateFormat))

	list, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Location:  &location,
		StartDate: &today,
		EndDate:   &today,
	})
	if err != nil {
		return nil, s.repoError("GetTodayBookings", err)
	}

	return models.FromDomainBookingList(list), nil
}

// ExportCSV выгружает журнал локации в CSV
// Колонки и их порядок повторяют исходный журнал; слот выгружается меткой
func (s *Service) ExportCSV(ctx context.Context, location domain.Location, todayOnly bool) ([]byte, error) {
	s.logger.Info("ExportCSV: location=%s, todayOnly=%t", location, todayOnly)

	filter := domain.BookingsFilter{Location: &location}
	if todayOnly {
		today := s.today()
		filter.StartDate = &today
		filter.EndDate = &today
	}

	list, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, s.repoError("ExportCSV", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("%w: ExportCSV - write header: %v", ErrInternal, err)
	}

	for _, b := range list {
		record := []string{
			b.Name,
			b.Email,
			b.StudentID,
			strconv.FormatBool(b.DSPS),
			b.Slot.Label(),
			string(b.Slot.Location),
			b.Exam,
			derefOrEmpty(b.Grade),
			derefOrEmpty(b.GradedBy),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("%w: ExportCSV - write record: %v", ErrInternal, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: ExportCSV - flush: %v", ErrInternal, err)
	}

	s.logger.Info("ExportCSV: location=%s, %d rows exported", location, len(list))
	return buf.Bytes(), nil
}

func (s *Service) today() time.Time {
	now := s.timeProvider.Now().In(s.timezone)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.timezone)
}

func (s *Service) repoError(op string, err error) error {
	if errors.Is(err, bookingRepo.ErrCorruptedRow) {
		s.logger.Error("%s: corrupted booking data: %v", op, err)
		return fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
