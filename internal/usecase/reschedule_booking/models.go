package reschedule_booking

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/pkg/types"
)

// Request модель запроса на перенос бронирования
// Локация и признак DSPS берутся из самого бронирования: перенос меняет
// только слот(ы), DSPS-пара переносится как единое целое
type Request struct {
	GroupID   string           // Идентификатор переносимого бронирования
	Date      time.Time        // Новая дата
	StartTime types.TimeString // Новое время начала; для DSPS начало первого слота
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	GroupID    string
	Location   domain.Location
	Exam       string
	DSPS       bool
	OldLabels  []string // метки освобожденных слотов
	SlotLabels []string // метки новых слотов
	Label      string
}
