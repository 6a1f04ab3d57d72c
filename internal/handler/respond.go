package handler

import (
	"errors"

	"github.com/SamarthBhogre/InternLink/internal/apperr"
	"github.com/SamarthBhogre/InternLink/prometheus"
	"github.com/labstack/echo/v4"
)

// respondError maps a service error onto the wire format. Expected
// failures carry their message under "msg"; storage failures keep the
// generic "Error" message with the backend detail attached.
func respondError(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		prometheus.RecordError(string(apperr.CodeStorage))
		return c.JSON(status, echo.Map{"msg": "Error", "error": err.Error()})
	}
	prometheus.RecordError(string(appErr.Code))
	if appErr.Code == apperr.CodeStorage {
		detail := appErr.Message
		if appErr.Err != nil {
			detail = appErr.Err.Error()
		}
		return c.JSON(status, echo.Map{"msg": "Error", "error": detail})
	}
	return c.JSON(status, echo.Map{"msg": appErr.Message})
}
