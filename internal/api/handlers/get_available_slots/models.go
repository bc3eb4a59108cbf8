package get_available_slots

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	getAvailableSlots "github.com/atlab/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Location string         `json:"labLocation"`
	Days     []AvailableDay `json:"days"`
}

// AvailableDay свободные слоты одного дня
type AvailableDay struct {
	Date   string           `json:"date"` // "2025-09-09"
	Label  string           `json:"label"`
	Slots  []AvailableSlot  `json:"slots,omitempty"`
	Blocks []AvailableBlock `json:"blocks,omitempty"`
}

// AvailableSlot модель одиночного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
}

// AvailableBlock модель сдвоенного блока
type AvailableBlock struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(location, dateStr string, dsps bool) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{
		Location: domain.Location(location),
		DSPS:     dsps,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]AvailableDay, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]AvailableSlot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = AvailableSlot{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				Label:     slot.Label,
			}
		}

		blocks := make([]AvailableBlock, len(day.Blocks))
		for j, block := range day.Blocks {
			blocks[j] = AvailableBlock{
				StartTime: block.StartTime.String(),
				EndTime:   block.EndTime.String(),
				Label:     block.Label,
			}
		}

		days[i] = AvailableDay{
			Date:   day.Date.Format(domain.DateFormat),
			Label:  day.Label,
			Slots:  slots,
			Blocks: blocks,
		}
	}

	return &AvailableSlotsResponse{
		Location: string(resp.Location),
		Days:     days,
	}
}
