package handler

import (
	"net/http"

	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ApplicationHandler exposes application CRUD.
type ApplicationHandler struct {
	applications *service.ApplicationService
}

func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Create handles POST /api/applications.
func (h *ApplicationHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("application", "create")

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		log.Error("Failed to parse application request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}

	created, err := h.applications.Create(c.Request().Context(), body)
	if err != nil {
		log.Error("Failed to create application", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "Application created", "application": created})
}

// List handles GET /api/applications with company, studentEmail and
// internshipId filters.
func (h *ApplicationHandler) List(c echo.Context) error {
	prometheus.RecordEntityOperation("application", "list")

	company := c.QueryParam("company")
	if company == "" {
		company = c.QueryParam("companyEmail")
	}
	filter := store.ApplicationFilter{
		Company:      company,
		StudentEmail: c.QueryParam("studentEmail"),
		InternshipID: c.QueryParam("internshipId"),
	}
	applications, err := h.applications.List(c.Request().Context(), filter)
	if err != nil {
		logger.FromContext(c).Error("Failed to list applications", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": applications})
}

// Get handles GET /api/applications/:id.
func (h *ApplicationHandler) Get(c echo.Context) error {
	prometheus.RecordEntityOperation("application", "get")

	application, err := h.applications.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"application": application})
}

// Update handles PUT /api/applications/:id; only the status is mutable.
func (h *ApplicationHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("application", "update")

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		log.Error("Failed to parse application update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}

	if err := h.applications.UpdateStatus(c.Request().Context(), c.Param("id"), body); err != nil {
		log.Warn("Failed to update application", zap.String("id", c.Param("id")), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Updated"})
}

// Delete handles DELETE /api/applications/:id.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	prometheus.RecordEntityOperation("application", "delete")

	if err := h.applications.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Deleted"})
}
