package handler

import (
	"net/http"

	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler exposes registration and the credential check.
type AuthHandler struct {
	identity *service.IdentityService
}

func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}

	created, err := h.identity.Register(c.Request().Context(), body)
	if err != nil {
		log.Error("Registration failed", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "User created", "user": created})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		UserType string `json:"userType"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}

	user, err := h.identity.Login(c.Request().Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		log.Warn("Login failed", zap.String("email", req.Email))
		return respondError(c, err)
	}
	log.Info("User logged in", zap.String("email", req.Email))
	return c.JSON(http.StatusOK, echo.Map{"msg": "Login successful", "user": user})
}
