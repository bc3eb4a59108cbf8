package get_lab_bookings

import (
	"errors"
	"net/http"

	"github.com/atlab/booking-service/internal/api/handlers"
	"github.com/atlab/booking-service/internal/service/bookings"
)

const (
	msgInvalidParams = "invalid query parameters, dates expected as YYYY-MM-DD"
	msgDataIntegrity = "booking records are inconsistent, please contact lab staff"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/bookings
// Query params: location, from, to (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(query.Get("location"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /staff/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetLabBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrDataIntegrity):
			h.logger.Error("GET /staff/bookings - Data integrity: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataIntegrity)

		default:
			h.logger.Error("GET /staff/bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/bookings - OK: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
