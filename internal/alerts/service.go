package alerts

import (
	"context"
	"fmt"

	"inventory-service/internal/domain"
	"inventory-service/internal/metrics"

	"go.uber.org/zap"
)

// DefaultThreshold is used when no threshold is configured
const DefaultThreshold = 2

// AlertService decides whether an item is low on stock and fans the alert out to every sink
type AlertService struct {
	threshold int
	sinks     []Sink
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewAlertService creates a new alert service. A non-positive threshold falls back to DefaultThreshold.
func NewAlertService(threshold int, sinks []Sink, logger *zap.Logger, m *metrics.Metrics) *AlertService {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &AlertService{
		threshold: threshold,
		sinks:     sinks,
		logger:    logger,
		metrics:   m,
	}
}

func (s *AlertService) Threshold() int {
	return s.threshold
}

// Sinks returns the names of the registered sinks
func (s *AlertService) Sinks() []string {
	names := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		names = append(names, sink.Name)
	}
	return names
}

// CheckAndNotify delivers the alert to every sink when quantity is below the threshold.
// It returns false without side effects otherwise.
func (s *AlertService) CheckAndNotify(ctx context.Context, item domain.InventoryItem) bool {
	if !item.IsLowStock(s.threshold) {
		return false
	}

	s.logger.Info("Low stock detected, notifying",
		zap.Uint("product_id", item.ID),
		zap.String("product", item.ProductName),
		zap.Int("quantity", item.Quantity),
		zap.Int("threshold", s.threshold),
	)

	for _, sink := range s.sinks {
		if err := s.deliver(ctx, sink, item); err != nil {
			s.metrics.SinkFailed(sink.Name)
			s.logger.Error("Failed to deliver low stock alert",
				zap.String("sink", sink.Name),
				zap.Uint("product_id", item.ID),
				zap.Error(err),
			)
			continue
		}
		s.metrics.AlertDelivered(sink.Name)
	}
	return true
}

// deliver isolates a single sink so a panic there is reported as an error
func (s *AlertService) deliver(ctx context.Context, sink Sink, item domain.InventoryItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink %s panicked: %v", sink.Name, r)
		}
	}()
	return sink.Notify(ctx, item)
}
