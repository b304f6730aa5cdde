package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderCreated OutboxEventType = "order_created"
)

// OutboxEvent — событие, записываемое в таблицу outbox_events в одной транзакции
// с заказом и публикуемое в Kafka фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	OrderID     string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// orderCreatedPayload — JSON-представление события о созданном заказе.
type orderCreatedPayload struct {
	EventID    string                    `json:"event_id"`
	OrderID    string                    `json:"order_id"`
	CustomerID string                    `json:"customer_id"`
	TotalCents int64                     `json:"total_cents"`
	Lines      []orderCreatedPayloadLine `json:"lines"`
	CreatedAt  time.Time                 `json:"created_at"`
}

type orderCreatedPayloadLine struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int32 `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// NewOrderCreatedEvent собирает outbox-событие по сохранённому заказу.
func NewOrderCreatedEvent(order *domain.Order) (*OutboxEvent, error) {
	eventID := uuid.NewString()

	lines := make([]orderCreatedPayloadLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderCreatedPayloadLine{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: line.Price,
		})
	}

	payload, err := json.Marshal(orderCreatedPayload{
		EventID:    eventID,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		TotalCents: order.Total(),
		Lines:      lines,
		CreatedAt:  order.CreatedAt,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: OrderCreated,
		OrderID:   order.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}
