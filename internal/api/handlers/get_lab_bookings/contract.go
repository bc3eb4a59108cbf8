package get_lab_bookings

import (
	"context"

	"github.com/atlab/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetLabBookings(ctx context.Context, req *models.GetLabBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
