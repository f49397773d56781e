package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/villastay/rental-service/internal/dto"
	"github.com/villastay/rental-service/internal/service"
)

// ErrorHandler is the single place service rejections become HTTP responses.
// Handlers return errors as-is; the kind decides the status code and the
// reason code rides along for machine consumption.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	resp := dto.ErrorResponse{Message: "internal server error"}

	var svcErr *service.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &svcErr):
		code = statusForKind(svcErr.Kind)
		resp.Message = svcErr.Message
		resp.Reason = svcErr.Reason
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			resp.Message = m
		}
	default:
		resp.Message = err.Error()
	}

	_ = c.JSON(code, resp)
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindAuthorization:
		return http.StatusForbidden
	case service.KindConflict:
		return http.StatusConflict
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
