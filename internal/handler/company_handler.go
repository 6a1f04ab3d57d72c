package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CompanyHandler exposes the company directory and verification flow.
type CompanyHandler struct {
	companies *service.CompanyService
}

func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// GetByEmail handles GET /api/companies/by-email.
func (h *CompanyHandler) GetByEmail(c echo.Context) error {
	prometheus.RecordEntityOperation("company", "get")

	email := c.QueryParam("email")
	if email == "" {
		return respondError(c, apperr.Validation("Missing email parameter"))
	}
	company, err := h.companies.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"company": company})
}

// RequestVerification handles POST /api/company/verify, accepting
// either multipart form data with a document file or a JSON body with a
// pre-hosted document URL.
func (h *CompanyHandler) RequestVerification(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "verify_request")

	var email, linkedin, documentURL string
	var document *multipart.FileHeader

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), "multipart/") {
		email = c.FormValue("email")
		linkedin = c.FormValue("linkedin")
		if fh, err := c.FormFile("document"); err == nil {
			document = fh
			prometheus.RecordUpload("verification_document")
		}
	} else {
		var req struct {
			Email       string `json:"email"`
			LinkedIn    string `json:"linkedin"`
			DocumentURL string `json:"documentUrl"`
		}
		if err := c.Bind(&req); err != nil {
			log.Error("Failed to parse verification request", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
		}
		email, linkedin, documentURL = req.Email, req.LinkedIn, req.DocumentURL
	}

	err := h.companies.RequestVerification(c.Request().Context(), email, linkedin, documentURL, document)
	if err != nil {
		log.Warn("Verification request failed", zap.String("email", email), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Verification requested", "email": email})
}

// ListPendingVerifications handles GET /api/admin/verifications.
func (h *CompanyHandler) ListPendingVerifications(c echo.Context) error {
	prometheus.RecordEntityOperation("company", "verifications_list")

	verifications, err := h.companies.ListPendingVerifications(c.Request().Context())
	if err != nil {
		logger.FromContext(c).Error("Failed to list verifications", zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"verifications": verifications})
}

// ProcessVerification handles POST /api/admin/verifications/:id/:action.
func (h *CompanyHandler) ProcessVerification(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "verification_process")

	status, err := h.companies.ProcessVerification(c.Request().Context(), c.Param("id"), c.Param("action"))
	if err != nil {
		log.Warn("Verification processing failed",
			zap.String("id", c.Param("id")),
			zap.String("action", c.Param("action")),
			zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "OK", "status": status})
}

// UpdateProfileByEmail handles PUT /api/users/by-email.
func (h *CompanyHandler) UpdateProfileByEmail(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("company", "profile_update")

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		log.Error("Failed to parse profile update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}
	email, _ := body["email"].(string)

	updated, err := h.companies.UpdateProfileByEmail(c.Request().Context(), email, body)
	if err != nil {
		log.Warn("Profile update failed", zap.String("email", email), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Updated", "user": updated})
}
