package handler

import (
	"net/http"
	"strings"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/internal/service"
	"github.com/SamarthBhogre/InternLink/pkg/logger"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ResumeHandler exposes resume upload, lookup and deletion.
type ResumeHandler struct {
	resumes *service.ResumeService
}

func NewResumeHandler(resumes *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

// Upload handles POST /api/upload_resume, accepting multipart form data
// or a JSON body with a base64 data-URL.
func (h *ResumeHandler) Upload(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("resume", "upload")

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), "multipart/") {
		email := c.FormValue("email")
		file, err := c.FormFile("resume")
		if email == "" || err != nil {
			return respondError(c, apperr.Validation("Missing email or file"))
		}
		prometheus.RecordUpload("resume")
		url, err := h.resumes.UploadFile(c.Request().Context(), email, file)
		if err != nil {
			log.Error("Resume upload failed", zap.String("email", email), zap.Error(err))
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"msg": "Uploaded", "url": url})
	}

	var req struct {
		Email   string `json:"email"`
		DataURL string `json:"dataUrl"`
		Data    string `json:"data"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse resume upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}
	dataURL := req.DataURL
	if dataURL == "" {
		dataURL = req.Data
	}
	if req.Email == "" || dataURL == "" {
		return respondError(c, apperr.Validation("Missing email or data"))
	}
	prometheus.RecordUpload("resume")
	url, err := h.resumes.UploadDataURL(c.Request().Context(), req.Email, dataURL)
	if err != nil {
		log.Error("Resume upload failed", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Uploaded", "url": url})
}

// Get handles GET /api/resume.
func (h *ResumeHandler) Get(c echo.Context) error {
	prometheus.RecordEntityOperation("resume", "get")

	email := c.QueryParam("email")
	if email == "" {
		return respondError(c, apperr.Validation("Missing email parameter"))
	}
	resume, err := h.resumes.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"resume": resume})
}

// Delete handles DELETE /api/upload_resume.
func (h *ResumeHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("resume", "delete")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse resume delete", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request"})
	}
	if req.Email == "" {
		return respondError(c, apperr.Validation("Missing email"))
	}

	if err := h.resumes.Delete(c.Request().Context(), req.Email); err != nil {
		log.Warn("Resume delete failed", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Deleted"})
}
