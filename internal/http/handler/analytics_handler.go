package handler

import (
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes the click aggregates to administrators.
type AnalyticsHandler struct {
	logger    *zap.Logger
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{logger: logger, analytics: analytics}
}

// Register wires GET /analytics onto an authenticated admin router.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("/analytics", h.Report)
}

// Report handles GET /api/admin/analytics?type=overview|publishers|categories|ads
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	report, err := h.analytics.Report(c.UserContext(), c.Query("type"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch analytics")
	}
	return c.JSON(report)
}
