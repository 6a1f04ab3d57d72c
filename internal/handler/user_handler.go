package handler

import (
	"net/http"

	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler exposes the admin-side user operations.
type UserHandler struct {
	identity *service.IdentityService
}

func NewUserHandler(identity *service.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// List handles GET /api/users with an optional substring query.
func (h *UserHandler) List(c echo.Context) error {
	prometheus.RecordEntityOperation("user", "list")

	users, err := h.identity.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		logger.FromContext(c).Error("Failed to list users", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Delete handles DELETE /api/users/:id, falling back to the companies
// collection when no user matches.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "delete")

	id := c.Param("id")
	if err := h.identity.DeleteUser(c.Request().Context(), id); err != nil {
		log.Warn("Failed to delete user", zap.String("id", id), zap.Error(err))
		return respondError(c, err)
	}
	log.Info("User deleted", zap.String("id", id))
	return c.JSON(http.StatusOK, echo.Map{"msg": "Deleted"})
}

// Suspend handles POST /api/users/:id/suspend.
func (h *UserHandler) Suspend(c echo.Context) error {
	prometheus.RecordEntityOperation("user", "suspend")

	id := c.Param("id")
	if err := h.identity.SuspendUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	logger.FromContext(c).Info("User suspended", zap.String("id", id))
	return c.JSON(http.StatusOK, echo.Map{"msg": "Suspended"})
}

// Activate handles POST /api/users/:id/activate.
func (h *UserHandler) Activate(c echo.Context) error {
	prometheus.RecordEntityOperation("user", "activate")

	id := c.Param("id")
	if err := h.identity.ActivateUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	logger.FromContext(c).Info("User activated", zap.String("id", id))
	return c.JSON(http.StatusOK, echo.Map{"msg": "Activated"})
}
