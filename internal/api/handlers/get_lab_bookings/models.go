package get_lab_bookings

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/internal/service/bookings/models"
	"github.com/atlab/booking-service/pkg/ptr"
)

// ToServiceRequest создает запрос сервиса из query параметров
// Все параметры опциональны: без них возвращается весь журнал
func ToServiceRequest(locationStr, fromStr, toStr string) (*models.GetLabBookingsRequest, error) {
	req := &models.GetLabBookingsRequest{}

	if locationStr != "" {
		req.Location = ptr.Ptr(domain.Location(locationStr))
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = ptr.Ptr(from)
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = ptr.Ptr(to)
	}

	return req, nil
}
