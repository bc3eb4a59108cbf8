package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atlab/booking-service/internal/api/handlers"
	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/internal/service/bookings"
)

const (
	msgMissingLocation = "location query parameter is required"
	msgDataIntegrity   = "booking records are inconsistent, please contact lab staff"
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

// Handle GET /api/v1/staff/bookings/export
// Query params: location (обязателен), today
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	location := query.Get("location")
	if location == "" {
		h.logger.Warn("GET /staff/bookings/export - Missing location")
		handlers.RespondBadRequest(w, msgMissingLocation)
		return
	}
	todayOnly := query.Get("today") == "true"

	data, err := h.service.ExportCSV(r.Context(), domain.Location(location), todayOnly)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrDataIntegrity):
			h.logger.Error("GET /staff/bookings/export - Data integrity: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgDataIntegrity)

		default:
			h.logger.Error("GET /staff/bookings/export - Failed: location=%s, error=%v", location, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("bookings_%s_%s.csv",
		strings.ReplaceAll(strings.ToLower(location), " ", "_"),
		time.Now().Format(domain.DateFormat),
	)

	h.logger.Info("GET /staff/bookings/export - OK: location=%s, today=%t, bytes=%d",
		location, todayOnly, len(data))
	handlers.RespondCSV(w, filename, data)
}
