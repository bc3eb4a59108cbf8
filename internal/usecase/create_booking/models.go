package create_booking

import (
	"time"

	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
// Выбранный слот передается явно в каждом запросе: никакого «отложенного
// выбора» на стороне сервиса нет, промежуточное состояние держит клиент.
type Request struct {
	Name      string           // Полное имя студента
	Email     string           // Институтская почта
	StudentID string           // Студенческий ID (префикс "900")
	Exam      string           // Номер практического экзамена
	Location  domain.Location  // Локация лаборатории
	DSPS      bool             // Сдвоенный блок для DSPS
	Date      time.Time        // Дата слота (без времени)
	StartTime types.TimeString // Начало слота; для DSPS начало первого слота блока
}

// Response модель ответа с созданным бронированием
type Response struct {
	GroupID    string          // Стабильный идентификатор бронирования
	Location   domain.Location // Локация
	Exam       string          // Номер экзамена
	DSPS       bool            // Сдвоенный блок
	SlotLabels []string        // Метки занятых слотов (две для DSPS)
	Label      string          // Отображаемая метка бронирования целиком
	Replaced   bool            // Было ли заменено предыдущее бронирование этой недели
}
