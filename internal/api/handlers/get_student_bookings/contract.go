package get_student_bookings

import (
	"context"

	"github.com/atlab/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetStudentBookings(ctx context.Context, email string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
