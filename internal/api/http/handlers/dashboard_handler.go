package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-maintenance/internal/service"
)

// DashboardHandler serves chart-ready ticket analytics.
type DashboardHandler struct {
	analytics *service.AnalyticsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(analyticsService *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analyticsService}
}

// Analytics GET /dashboard/analytics.
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.analytics.DashboardAnalytics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": analytics})
}
