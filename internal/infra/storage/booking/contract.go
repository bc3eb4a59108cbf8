package booking

import (
	"github.com/atlab/booking-service/pkg/txmanager"
)

// DBExecutor интерфейс для выполнения запросов
// Поддерживает *sql.DB и активную транзакцию из контекста (через txmanager)
type DBExecutor = txmanager.Executor
