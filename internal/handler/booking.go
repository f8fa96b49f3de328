package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// BookingRules is the slice of the booking service the HTTP layer
// depends on.  All rule enforcement lives behind it; handlers only
// shape input and output.
type BookingRules interface {
	ListBooking(ctx context.Context, userID uint64) (model.BookingWithRoom, error)
	CreateBooking(ctx context.Context, userID, roomID uint64) (model.Booking, error)
	UpdateBooking(ctx context.Context, userID, bookingID, roomID uint64) (model.Booking, error)
}

// BookingHandler serves the /v1/booking resource.  JWT authentication
// runs in middleware before any of these methods; service errors are
// returned untouched for the shared HTTPErrorHandler to translate.
type BookingHandler struct {
	Service BookingRules
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc BookingRules) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc}
}

// bookingReq is the payload for both create and update.  The wire
// field name matches the client contract.
type bookingReq struct {
	RoomID uint64 `json:"roomId"`
}

// GetBooking handles GET /v1/booking.  It returns the caller's booking
// with its room embedded, or 404 when none exists.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	booking, err := h.Service.ListBooking(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// CreateBooking handles POST /v1/booking.  The body must carry a
// positive roomId; every booking rule is checked by the service.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}
	booking, err := h.Service.CreateBooking(c.Request().Context(), userID, req.RoomID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"bookingId": booking.ID})
}

// UpdateBooking handles PUT /v1/booking/:bookingId.  It moves the
// caller's booking to the room named in the body.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}
	booking, err := h.Service.UpdateBooking(c.Request().Context(), userID, bookingID, req.RoomID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"bookingId": booking.ID})
}
