package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/companydesk/internal/health"
	"github.com/charlesng35/companydesk/pkg/logger"
)

// HealthHandler exposes liveness and readiness reports.
type HealthHandler struct {
	registry *health.Registry
	log      *zap.Logger
}

// NewHealthHandler constructs a HealthHandler. A nil registry reports up with no checks.
func NewHealthHandler(registry *health.Registry) *HealthHandler {
	if registry == nil {
		registry = health.NewRegistry()
	}
	return &HealthHandler{registry: registry, log: logger.WithModule("health")}
}

// Summary reports overall readiness without per-check details.
func (h *HealthHandler) Summary(c *gin.Context) {
	report := h.registry.Readiness(requestContext(c))
	h.logFailure(report)
	c.JSON(reportStatus(report), gin.H{
		"success":    report.Success,
		"status":     report.Status,
		"checked_at": time.Now().UTC(),
	})
}

// Live reports liveness probes.
func (h *HealthHandler) Live(c *gin.Context) {
	h.write(c, h.registry.Liveness(requestContext(c)))
}

// Ready reports readiness probes.
func (h *HealthHandler) Ready(c *gin.Context) {
	h.write(c, h.registry.Readiness(requestContext(c)))
}

func (h *HealthHandler) write(c *gin.Context, report health.Report) {
	h.logFailure(report)
	c.JSON(reportStatus(report), gin.H{
		"success":    report.Success,
		"status":     report.Status,
		"checks":     report.Checks,
		"checked_at": time.Now().UTC(),
	})
}

func (h *HealthHandler) logFailure(report health.Report) {
	for _, check := range report.Checks {
		if check.Status != health.StatusUp {
			h.log.Warn("health check not up",
				zap.String("component", check.Component),
				zap.String("status", string(check.Status)),
				zap.String("details", check.Details),
			)
		}
	}
}

func reportStatus(report health.Report) int {
	if report.Success {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
