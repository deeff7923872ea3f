package kafka

import (
	"context"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// IKafkaProducer интерфейс для отправки сообщений в Kafka
type IKafkaProducer interface {
	// SendUsageEvent отправляет событие об обработанном запросе расчёта
	SendUsageEvent(ctx context.Context, request *domain.ChartRequest) error
	// Send отправляет произвольное сообщение
	Send(ctx context.Context, key string, value []byte) error
	// Close закрывает producer
	Close() error
}
