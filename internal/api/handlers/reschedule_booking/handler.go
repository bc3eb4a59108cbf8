package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/atlab/booking-service/internal/api/handlers"
	rescheduleBooking "github.com/atlab/booking-service/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid date or time, expected date YYYY-MM-DD and time HH:MM"
	msgInvalidInput       = "missing or invalid reschedule fields"
	msgBookingNotFound    = "booking not found"
	msgSlotNotInSchedule  = "selected time is not on the lab schedule"
	msgSlotNotAvailable   = "selected time slot is no longer available"
	msgSameDayLockout     = "the appointment is today and can no longer be moved"
	msgDataIntegrity      = "booking records are inconsistent, please contact lab staff"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/bookings/{groupId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupId"]

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/bookings/{groupId}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(groupID)
	if err != nil {
		h.logger.Warn("POST /staff/bookings/{groupId}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /staff/bookings/{groupId}/reschedule - Invalid input: group_id=%s, error=%v",
				groupID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /staff/bookings/{groupId}/reschedule - Not found: group_id=%s", groupID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotNotInSchedule):
			h.logger.Warn("POST /staff/bookings/{groupId}/reschedule - Slot not in schedule: group_id=%s, date=%s, time=%s",
				groupID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotInSchedule)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /staff/bookings/{groupId}/reschedule - Slot not available: group_id=%s, date=%s, time=%s",
				groupID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrSameDayLockout):
			h.logger.Warn("POST /staff/bookings/{groupId}/reschedule - Same-day lockout: group_id=%s", groupID)
			handlers.RespondConflict(w, msgSameDayLockout)

		case errors.Is(err, rescheduleBooking.ErrDataIntegrity):
			h.logger.Error("POST /staff/bookings/{groupId}/reschedule - Data integrity: group_id=%s, error=%v",
				groupID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataIntegrity)

		default:
			h.logger.Error("POST /staff/bookings/{groupId}/reschedule - Failed: group_id=%s, error=%v",
				groupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/bookings/{groupId}/reschedule - Rescheduled: group_id=%s, new=%s",
		groupID, result.Label)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
