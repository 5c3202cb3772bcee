package alerts

import (
	"context"
	"sync"
	"time"

	"inventory-service/internal/domain"
	"inventory-service/internal/metrics"

	"go.uber.org/zap"
)

// LowStockFinder returns every item whose quantity is strictly below threshold
type LowStockFinder interface {
	FindByQuantityLessThan(ctx context.Context, threshold int) ([]domain.InventoryItem, error)
}

// SweepResult summarises one pass of the checker
type SweepResult struct {
	LowStock    int    `json:"low_stock"`
	Notified    []uint `json:"notified"`
	LedgerReset bool   `json:"ledger_reset"`
	Failed      bool   `json:"failed"`
}

// Checker periodically sweeps the inventory and alerts once per product until cleared
type Checker struct {
	finder  LowStockFinder
	alerts  *AlertService
	ledger  *Ledger
	logger  *zap.Logger
	metrics *metrics.Metrics

	// sweeps never overlap
	sweepMu sync.Mutex
}

func NewChecker(finder LowStockFinder, alerts *AlertService, logger *zap.Logger, m *metrics.Metrics) *Checker {
	return &Checker{
		finder:  finder,
		alerts:  alerts,
		ledger:  NewLedger(),
		logger:  logger,
		metrics: m,
	}
}

func (c *Checker) Threshold() int {
	return c.alerts.Threshold()
}

// Sweep runs one check. Store errors are logged and leave the ledger untouched.
func (c *Checker) Sweep(ctx context.Context) SweepResult {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	start := time.Now()
	result := SweepResult{Notified: []uint{}}

	items, err := c.finder.FindByQuantityLessThan(ctx, c.alerts.Threshold())
	if err != nil {
		c.logger.Error("Error checking inventory for low stock", zap.Error(err))
		c.metrics.ObserveSweep(metrics.SweepFailed, time.Since(start))
		result.Failed = true
		return result
	}
	result.LowStock = len(items)

	if len(items) == 0 {
		if dropped := c.ledger.Reset(); dropped > 0 {
			c.logger.Info("No low stock items, alert ledger reset", zap.Int("dropped", dropped))
		}
		result.LedgerReset = true
		c.metrics.SetLedgerSize(0)
		c.metrics.ObserveSweep(metrics.SweepOK, time.Since(start))
		return result
	}

	c.logger.Info("Found items below stock threshold",
		zap.Int("count", len(items)),
		zap.Int("threshold", c.alerts.Threshold()),
	)

	for _, item := range items {
		if !c.ledger.MarkIfAbsent(item.ID) {
			c.logger.Debug("Alert already sent", zap.Uint("product_id", item.ID))
			continue
		}
		c.alerts.CheckAndNotify(ctx, item)
		result.Notified = append(result.Notified, item.ID)
	}

	c.metrics.SetLedgerSize(c.ledger.Len())
	c.metrics.ObserveSweep(metrics.SweepOK, time.Since(start))
	return result
}

// Clear forgets the alert for id so the next sweep can alert again. Unknown ids are a no-op.
func (c *Checker) Clear(id uint) {
	if c.ledger.Remove(id) {
		c.logger.Info("Low stock alert cleared", zap.Uint("product_id", id))
	}
	c.metrics.SetLedgerSize(c.ledger.Len())
}

// Alerted returns the ids that currently have an outstanding alert
func (c *Checker) Alerted() []uint {
	return c.ledger.IDs()
}

// Run sweeps after initialDelay and then every interval until ctx is cancelled
func (c *Checker) Run(ctx context.Context, initialDelay, interval time.Duration) {
	c.logger.Info("Low stock checker started",
		zap.Duration("initial_delay", initialDelay),
		zap.Duration("interval", interval),
		zap.Int("threshold", c.alerts.Threshold()),
	)

	timer := time.NewTimer(initialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.logger.Info("Low stock checker stopped")
		return
	case <-timer.C:
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c.Sweep(ctx)

		select {
		case <-ctx.Done():
			c.logger.Info("Low stock checker stopped")
			return
		case <-ticker.C:
		}
	}
}
