package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/atlab/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/atlab/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate     = "invalid date, expected YYYY-MM-DD"
	msgUnknownLocation = "unknown lab location"
	msgDataIntegrity   = "booking records are inconsistent, please contact lab staff"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{location}/available-slots
// Query params: date (опционально, без даты возвращается весь горизонт), dsps
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	location := vars["location"]

	dateStr := r.URL.Query().Get("date")
	dsps := r.URL.Query().Get("dsps") == "true"

	useCaseReq, err := ToUseCaseRequest(location, dateStr, dsps)
	if err != nil {
		h.logger.Warn("GET /locations/{location}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnknownLocation):
			h.logger.Warn("GET /locations/{location}/available-slots - Unknown location: %s", location)
			handlers.RespondNotFound(w, msgUnknownLocation)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /locations/{location}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDataIntegrity):
			h.logger.Error("GET /locations/{location}/available-slots - Data integrity: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataIntegrity)

		default:
			h.logger.Error("GET /locations/{location}/available-slots - Failed: location=%s, error=%v",
				location, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{location}/available-slots - OK: location=%s, days=%d, dsps=%t",
		location, len(result.Days), dsps)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
