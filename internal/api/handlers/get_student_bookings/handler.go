package get_student_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/atlab/booking-service/internal/api/handlers"
	"github.com/atlab/booking-service/internal/service/bookings"
)

const (
	msgMissingEmail  = "student email is required"
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

// Handle GET /api/v1/students/{email}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := vars["email"]

	result, err := h.service.GetStudentBookings(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /students/{email}/bookings - Missing email")
			handlers.RespondBadRequest(w, msgMissingEmail)

		case errors.Is(err, bookings.ErrDataIntegrity):
			h.logger.Error("GET /students/{email}/bookings - Data integrity: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataIntegrity)

		default:
			h.logger.Error("GET /students/{email}/bookings - Failed: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{email}/bookings - OK: email=%s, count=%d", email, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
