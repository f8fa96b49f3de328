package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// AdminHandler serves operator-only endpoints.  Routes using it sit
// behind RequireRole("ADMIN").
type AdminHandler struct {
	Bookings *repository.BookingRepo
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(bookings *repository.BookingRepo) *AdminHandler {
	if bookings == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Bookings: bookings}
}

// RoomBookings handles GET /v1/admin/rooms/:id/bookings.  It lists
// every booking on a room so an operator can see who occupies it.
func (h *AdminHandler) RoomBookings(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	bookings, err := h.Bookings.ListByRoom(c.Request().Context(), roomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}
