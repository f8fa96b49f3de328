package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/middleware"
)

// RegisterBooking registers the booking resource under /v1.  All
// routes require a valid JWT; the handlers delegate every business
// rule to the booking service and forward its errors to the shared
// HTTP error translator.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("PARTICIPANT", "ADMIN"),
	)
	g.GET("/booking", h.GetBooking)
	g.POST("/booking", h.CreateBooking)
	g.PUT("/booking/:bookingId", h.UpdateBooking)
}
