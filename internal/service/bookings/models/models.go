package models

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/pkg/types"
)

// GetLabBookingsRequest запрос на получение бронирований лаборатории
type GetLabBookingsRequest struct {
	Location  *domain.Location // Фильтр по локации (nil значит все)
	StartDate *time.Time       // Начало периода (опционально)
	EndDate   *time.Time       // Конец периода (опционально)
}

// BookingView отображаемая строка журнала бронирований
type BookingView struct {
	GroupID   string           `json:"groupId"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	StudentID string           `json:"studentId"`
	DSPS      bool             `json:"dsps"`
	Location  string           `json:"labLocation"`
	Date      string           `json:"date"`      // YYYY-MM-DD
	StartTime types.TimeString `json:"startTime"` // HH:MM
	EndTime   types.TimeString `json:"endTime"`   // HH:MM
	SlotLabel string           `json:"slotLabel"` // "Monday 09/09/25 9:00–9:15 AM"
	Exam      string           `json:"examNumber"`
	Grade     *string          `json:"grade,omitempty"`
	GradedBy  *string          `json:"gradedBy,omitempty"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingView `json:"bookings"`
	Total    int           `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в отображаемую модель
func FromDomainBooking(b *domain.Booking) BookingView {
	return BookingView{
		GroupID:   b.GroupID,
		Name:      b.Name,
		Email:     b.Email,
		StudentID: b.StudentID,
		DSPS:      b.DSPS,
		Location:  string(b.Slot.Location),
		Date:      b.Slot.Date().Format(domain.DateFormat),
		StartTime: types.NewTimeString(b.Slot.Start),
		EndTime:   types.NewTimeString(b.Slot.End),
		SlotLabel: b.Slot.Label(),
		Exam:      b.Exam,
		Grade:     b.Grade,
		GradedBy:  b.GradedBy,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(list []*domain.Booking) *BookingListResponse {
	views := make([]BookingView, len(list))
	for i, b := range list {
		views[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: views,
		Total:    len(views),
	}
}
