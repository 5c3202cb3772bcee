package handlers

import (
	"context"
	"net/http"

	"inventory-service/internal/alerts"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AlertChecker exposes the low stock checker to HTTP
type AlertChecker interface {
	Sweep(ctx context.Context) alerts.SweepResult
	Alerted() []uint
	Threshold() int
}

type AlertHandler struct {
	checker AlertChecker
	sinks   []string
	logger  *zap.Logger
}

func NewAlertHandler(checker AlertChecker, sinks []string, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{checker: checker, sinks: sinks, logger: logger}
}

// GetAlerts handles GET /api/alerts
// @Summary      Outstanding low stock alerts
// @Description  Product ids already alerted and suppressed until their quantity is replenished.
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  AlertStatusResponse
// @Router       /alerts [get]
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, AlertStatusResponse{
		Threshold: h.checker.Threshold(),
		Alerted:   h.checker.Alerted(),
		Sinks:     h.sinks,
	})
}

// RunCheck handles POST /api/alerts/check
// @Summary      Run a low stock check now
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  SweepResponse
// @Router       /alerts/check [post]
func (h *AlertHandler) RunCheck(c *gin.Context) {
	result := h.checker.Sweep(c.Request.Context())

	h.logger.Info("Manual low stock check completed",
		zap.Int("low_stock", result.LowStock),
		zap.Int("notified", len(result.Notified)),
		zap.Bool("failed", result.Failed),
	)

	c.JSON(http.StatusOK, SweepResponse{
		LowStock:    result.LowStock,
		Notified:    result.Notified,
		LedgerReset: result.LedgerReset,
		Failed:      result.Failed,
	})
}
