package get_available_slots

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Location domain.Location // Локация лаборатории
	Date     *time.Time      // Конкретная дата; nil означает весь горизонт
	DSPS     bool            // Вернуть сдвоенные блоки вместо одиночных слотов
}

// Response модель ответа со свободными слотами, сгруппированными по дням
type Response struct {
	Location domain.Location
	Days     []Day
}

// Day свободные слоты одного дня
type Day struct {
	Date   time.Time
	Label  string  // "Monday 09/09/25"
	Slots  []Slot  // пусто в режиме DSPS
	Blocks []Block // заполнено только в режиме DSPS
}

// Slot модель одиночного слота
type Slot struct {
	StartTime types.TimeString // "09:00"
	EndTime   types.TimeString // "09:15"
	Label     string           // "Monday 09/09/25 9:00–9:15 AM"
}

// Block модель сдвоенного блока для DSPS
type Block struct {
	StartTime types.TimeString // начало первого слота
	EndTime   types.TimeString // конец второго слота
	Label     string           // метки обоих слотов через " and "
}

func newSlotView(s domain.Slot) Slot {
	return Slot{
		StartTime: types.NewTimeString(s.Start),
		EndTime:   types.NewTimeString(s.End),
		Label:     s.Label(),
	}
}

func newBlockView(b domain.DoubleBlock) Block {
	return Block{
		StartTime: types.NewTimeString(b.First.Start),
		EndTime:   types.NewTimeString(b.Second.End),
		Label:     b.Label(),
	}
}
