package create_booking

import (
	"errors"
	"net/http"

	"github.com/atlab/booking-service/internal/api/handlers"
	createBooking "github.com/atlab/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid date or time, expected date YYYY-MM-DD and time HH:MM"
	msgInvalidInput       = "missing or invalid booking fields"
	msgNotEligible        = "student ID, email, or exam number is not eligible for booking"
	msgUnknownLocation    = "unknown lab location"
	msgSlotNotInSchedule  = "selected time is not on the lab schedule"
	msgSlotNotAvailable   = "selected time slot is no longer available"
	msgSameDayLockout     = "your existing appointment is today and can no longer be changed"
	msgDataIntegrity      = "booking records are inconsistent, please contact lab staff"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: email=%s, error=%v", req.Email, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrNotEligible):
			h.logger.Warn("POST /bookings - Not eligible: email=%s, student_id=%s", req.Email, req.StudentID)
			handlers.RespondUnprocessable(w, msgNotEligible)

		case errors.Is(err, createBooking.ErrUnknownLocation):
			h.logger.Warn("POST /bookings - Unknown location: %s", req.Location)
			handlers.RespondBadRequest(w, msgUnknownLocation)

		case errors.Is(err, createBooking.ErrSlotNotInSchedule):
			h.logger.Warn("POST /bookings - Slot not in schedule: email=%s, date=%s, time=%s",
				req.Email, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotInSchedule)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: email=%s, date=%s, time=%s",
				req.Email, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSameDayLockout):
			h.logger.Warn("POST /bookings - Same-day lockout: email=%s, exam=%s", req.Email, req.Exam)
			handlers.RespondConflict(w, msgSameDayLockout)

		case errors.Is(err, createBooking.ErrDataIntegrity):
			h.logger.Error("POST /bookings - Data integrity: email=%s, error=%v", req.Email, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataIntegrity)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: group_id=%s, email=%s, replaced=%t",
		result.GroupID, req.Email, result.Replaced)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
