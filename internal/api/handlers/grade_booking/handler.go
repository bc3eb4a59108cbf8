package grade_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/atlab/booking-service/internal/api/handlers"
	gradeBooking "github.com/atlab/booking-service/internal/usecase/grade_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "grade and grader initials are required"
	msgBookingNotFound    = "booking not found"
	msgDataIntegrity      = "booking records are inconsistent, please contact lab staff"
)

// GradeBookingRequest HTTP request model
type GradeBookingRequest struct {
	Grade    string `json:"grade"`
	GradedBy string `json:"gradedBy"`
}

// GradeBookingResponse HTTP response model
type GradeBookingResponse struct {
	GroupID  string `json:"groupId"`
	Email    string `json:"email"`
	Exam     string `json:"examNumber"`
	Grade    string `json:"grade"`
	GradedBy string `json:"gradedBy"`
}

type Handler struct {
	useCase GradeBookingUseCase
	logger  Logger
}

func NewHandler(useCase GradeBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/bookings/{groupId}/grade
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupId"]

	var req GradeBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/bookings/{groupId}/grade - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &gradeBooking.Request{
		GroupID:  groupID,
		Grade:    req.Grade,
		GradedBy: req.GradedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, gradeBooking.ErrInvalidInput):
			h.logger.Warn("POST /staff/bookings/{groupId}/grade - Invalid input: group_id=%s, error=%v",
				groupID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, gradeBooking.ErrBookingNotFound):
			h.logger.Warn("POST /staff/bookings/{groupId}/grade - Not found: group_id=%s", groupID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, gradeBooking.ErrDataIntegrity):
			h.logger.Error("POST /staff/bookings/{groupId}/grade - Data integrity: group_id=%s, error=%v",
				groupID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataIntegrity)

		default:
			h.logger.Error("POST /staff/bookings/{groupId}/grade - Failed: group_id=%s, error=%v",
				groupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/bookings/{groupId}/grade - Graded: group_id=%s, grade=%s, by=%s",
		groupID, result.Grade, result.GradedBy)
	handlers.RespondJSON(w, http.StatusOK, &GradeBookingResponse{
		GroupID:  result.GroupID,
		Email:    result.Email,
		Exam:     result.Exam,
		Grade:    result.Grade,
		GradedBy: result.GradedBy,
	})
}
