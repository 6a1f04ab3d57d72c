package handler

import (
	"net/http"

	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes the read-only aggregate views.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// PlatformSummary handles GET /api/admin/analytics.
func (h *AnalyticsHandler) PlatformSummary(c echo.Context) error {
	prometheus.RecordEntityOperation("analytics", "platform")

	summary, err := h.analytics.PlatformSummary(c.Request().Context())
	if err != nil {
		logger.FromContext(c).Error("Failed to build platform summary", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// CompanySummary handles GET /api/company/overview.
func (h *AnalyticsHandler) CompanySummary(c echo.Context) error {
	prometheus.RecordEntityOperation("analytics", "company")

	company := c.QueryParam("company")
	if company == "" {
		company = c.QueryParam("companyEmail")
	}
	summary, err := h.analytics.CompanySummary(c.Request().Context(), company)
	if err != nil {
		logger.FromContext(c).Warn("Failed to build company summary",
			zap.String("company", company),
			zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
