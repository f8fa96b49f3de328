package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/service"
)

// HTTPErrorHandler is the shared translator from domain error kinds to
// HTTP status codes.  Handlers return service errors unmodified and
// this function, installed as Echo's HTTPErrorHandler, maps them:
// not-found kinds to 404, booking-rule violations to 403, explicit
// echo.HTTPError values as-is, and everything else to 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			_ = c.JSON(he.Code, echo.Map{"error": msg})
		} else {
			_ = c.JSON(he.Code, he.Message)
		}
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCannotBook):
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
