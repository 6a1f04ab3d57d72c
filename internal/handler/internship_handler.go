package handler

import (
	"net/http"

	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InternshipHandler exposes the internship catalog.
type InternshipHandler struct {
	internships *service.InternshipService
}

func NewInternshipHandler(internships *service.InternshipService) *InternshipHandler {
	return &InternshipHandler{internships: internships}
}

// Create handles POST /api/internships.
func (h *InternshipHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("internship", "create")

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		log.Error("Failed to parse internship request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}

	created, err := h.internships.Create(c.Request().Context(), body)
	if err != nil {
		log.Error("Failed to create internship", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "Internship created", "internship": created})
}

// List handles GET /api/internships with company and q filters.
func (h *InternshipHandler) List(c echo.Context) error {
	prometheus.RecordEntityOperation("internship", "list")

	company := c.QueryParam("company")
	if company == "" {
		company = c.QueryParam("companyEmail")
	}
	internships, err := h.internships.List(c.Request().Context(), company, c.QueryParam("q"))
	if err != nil {
		logger.FromContext(c).Error("Failed to list internships", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"internships": internships})
}

// Update handles PUT /api/internships/:id.
func (h *InternshipHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("internship", "update")

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		log.Error("Failed to parse internship update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}

	updated, err := h.internships.Update(c.Request().Context(), c.Param("id"), body)
	if err != nil {
		log.Warn("Failed to update internship", zap.String("id", c.Param("id")), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Updated", "internship": updated})
}

// Approve handles POST /api/internships/:id/approve.
func (h *InternshipHandler) Approve(c echo.Context) error {
	prometheus.RecordEntityOperation("internship", "approve")

	if err := h.internships.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Approved"})
}

// Reject handles POST /api/internships/:id/reject.
func (h *InternshipHandler) Reject(c echo.Context) error {
	prometheus.RecordEntityOperation("internship", "reject")

	if err := h.internships.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Rejected"})
}
