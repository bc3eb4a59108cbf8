package export_bookings

import (
	"context"

	"github.com/atlab/booking-service/internal/domain"
)

type BookingService interface {
	ExportCSV(ctx context.Context, location domain.Location, todayOnly bool) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
