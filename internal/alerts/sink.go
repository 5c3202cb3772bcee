package alerts

import (
	"context"
	"time"

	"inventory-service/internal/domain"
	"inventory-service/internal/events"

	"go.uber.org/zap"
)

// NotifyFunc delivers one low stock notification
type NotifyFunc func(ctx context.Context, item domain.InventoryItem) error

// Sink is a named delivery channel. The set of sinks is fixed at startup.
type Sink struct {
	Name   string
	Notify NotifyFunc
}

// ConsoleSink writes the alert to the log at WARN level. It never fails.
func ConsoleSink(logger *zap.Logger) Sink {
	return Sink{
		Name: "console",
		Notify: func(ctx context.Context, item domain.InventoryItem) error {
			logger.Warn("=== LOW STOCK ALERT ===",
				zap.String("product", item.ProductName),
				zap.Uint("product_id", item.ID),
				zap.Int("quantity", item.Quantity),
				zap.String("price_per_unit", item.PricePerUnit.StringFixed(2)),
				zap.String("total_price", totalString(item)),
			)
			return nil
		},
	}
}

// EmailSink mails an HTML alert through the given mailer
func EmailSink(mailer *Mailer) Sink {
	return Sink{
		Name:   "email",
		Notify: mailer.Send,
	}
}

// EventSink publishes a LowStockAlertEvent (Kafka when enabled)
func EventSink(publisher events.EventPublisher, threshold int) Sink {
	return Sink{
		Name: "kafka",
		Notify: func(ctx context.Context, item domain.InventoryItem) error {
			return publisher.Publish(ctx, events.LowStockAlertEvent{
				ProductID:    item.ID,
				ProductName:  item.ProductName,
				Quantity:     item.Quantity,
				Threshold:    threshold,
				PricePerUnit: item.PricePerUnit.StringFixed(2),
				TotalPrice:   totalString(item),
				OccurredAt:   time.Now().UTC(),
			})
		},
	}
}

func totalString(item domain.InventoryItem) string {
	if !item.TotalPrice.Valid {
		return ""
	}
	return item.TotalPrice.Decimal.StringFixed(2)
}
