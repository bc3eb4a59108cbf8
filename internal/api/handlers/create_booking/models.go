package create_booking

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	createBooking "github.com/atlab/booking-service/internal/usecase/create_booking"
	"github.com/atlab/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
	Exam      string `json:"examNumber"`
	Location  string `json:"labLocation"`
	DSPS      bool   `json:"dsps"`
	Date      string `json:"date"`      // "2025-09-09"
	StartTime string `json:"startTime"` // "09:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	GroupID    string   `json:"groupId"`
	Location   string   `json:"labLocation"`
	Exam       string   `json:"examNumber"`
	DSPS       bool     `json:"dsps"`
	SlotLabels []string `json:"slotLabels"`
	Label      string   `json:"label"`
	Replaced   bool     `json:"replaced"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Name:      r.Name,
		Email:     r.Email,
		StudentID: r.StudentID,
		Exam:      r.Exam,
		Location:  domain.Location(r.Location),
		DSPS:      r.DSPS,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		GroupID:    resp.GroupID,
		Location:   string(resp.Location),
		Exam:       resp.Exam,
		DSPS:       resp.DSPS,
		SlotLabels: resp.SlotLabels,
		Label:      resp.Label,
		Replaced:   resp.Replaced,
	}
}
