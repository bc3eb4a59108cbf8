package reschedule_booking

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	rescheduleBooking "github.com/atlab/booking-service/internal/usecase/reschedule_booking"
	"github.com/atlab/booking-service/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date"`      // "2025-09-10"
	StartTime string `json:"startTime"` // "10:00"
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	GroupID    string   `json:"groupId"`
	Location   string   `json:"labLocation"`
	Exam       string   `json:"examNumber"`
	DSPS       bool     `json:"dsps"`
	OldLabels  []string `json:"oldSlotLabels"`
	SlotLabels []string `json:"slotLabels"`
	Label      string   `json:"label"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(groupID string) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		GroupID:   groupID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		GroupID:    resp.GroupID,
		Location:   string(resp.Location),
		Exam:       resp.Exam,
		DSPS:       resp.DSPS,
		OldLabels:  resp.OldLabels,
		SlotLabels: resp.SlotLabels,
		Label:      resp.Label,
	}
}
