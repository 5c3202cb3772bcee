package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Product events
type ProductCreatedEvent struct {
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	PricePerUnit string    `json:"price_per_unit"`
	Quantity     int       `json:"quantity"`
	TotalPrice   string    `json:"total_price"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type ProductUpdatedEvent struct {
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	PricePerUnit string    `json:"price_per_unit"`
	Quantity     int       `json:"quantity"`
	TotalPrice   string    `json:"total_price"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type ProductQuantityUpdatedEvent struct {
	ProductID        uint      `json:"product_id"`
	PreviousQuantity int       `json:"previous_quantity"`
	Quantity         int       `json:"quantity"`
	TotalPrice       string    `json:"total_price"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type ProductDeletedEvent struct {
	ProductID  uint      `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Staff events
type StaffCreatedEvent struct {
	StaffID    uint      `json:"staff_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Rights     string    `json:"rights"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type StaffUpdatedEvent struct {
	StaffID    uint      `json:"staff_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Rights     string    `json:"rights"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type StaffDeletedEvent struct {
	StaffID    uint      `json:"staff_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LowStockAlertEvent is emitted by the alert sink when a product drops below threshold
type LowStockAlertEvent struct {
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Threshold    int       `json:"threshold"`
	PricePerUnit string    `json:"price_per_unit"`
	TotalPrice   string    `json:"total_price"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// InMemoryEventPublisher keeps events in memory and logs them.
// Used when Kafka is disabled.
type InMemoryEventPublisher struct {
	logger *zap.Logger
	mu     sync.Mutex
	events []interface{}
}

func NewEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Debug("Event published (in-memory)",
		zap.String("event-type", EventType(event)),
		zap.Any("event", event),
	)
	return nil
}

// Events returns a copy of everything published so far
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}

// EventType returns the event type as string
func EventType(event interface{}) string {
	switch event.(type) {
	case ProductCreatedEvent:
		return "ProductCreated"
	case ProductUpdatedEvent:
		return "ProductUpdated"
	case ProductQuantityUpdatedEvent:
		return "ProductQuantityUpdated"
	case ProductDeletedEvent:
		return "ProductDeleted"
	case StaffCreatedEvent:
		return "StaffCreated"
	case StaffUpdatedEvent:
		return "StaffUpdated"
	case StaffDeletedEvent:
		return "StaffDeleted"
	case LowStockAlertEvent:
		return "LowStockAlert"
	default:
		return "Unknown"
	}
}
