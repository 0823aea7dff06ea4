package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/validation"
)

// ErrorHandler renders every error as the {message, errors?} envelope.
// Unexpected errors are logged and their detail is not exposed.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		_ = c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Message: "The given data is invalid.",
			Errors:  verrs.Fields,
		})
		return
	}

	code := http.StatusInternalServerError
	msg := "An unexpected error occurred."

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code != http.StatusInternalServerError {
			switch m := he.Message.(type) {
			case string:
				msg = m
			case error:
				msg = m.Error()
			case fmt.Stringer:
				msg = m.String()
			default:
				msg = http.StatusText(code)
			}
		}
	}

	if code == http.StatusInternalServerError {
		log.WithError(err).Error("unhandled error")
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
