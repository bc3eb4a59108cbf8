package grade_booking

import (
	"context"

	gradeBooking "github.com/atlab/booking-service/internal/usecase/grade_booking"
)

type GradeBookingUseCase interface {
	Execute(ctx context.Context, req *gradeBooking.Request) (*gradeBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
