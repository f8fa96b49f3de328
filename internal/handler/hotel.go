package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// HotelHandler serves the public hotel browse endpoints.  Responses
// are read-only and a good fit for the Redis response cache.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
}

// NewHotelHandler constructs a HotelHandler.
func NewHotelHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo) *HotelHandler {
	if hotels == nil || rooms == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, Rooms: rooms}
}

// ListHotels handles GET /v1/hotels.
func (h *HotelHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Hotels.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotels"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": hotels})
}

// roomWithOccupancy adds the current booking count to a room so
// clients can show free slots before attempting to book.
type roomWithOccupancy struct {
	model.Room
	Occupied int `json:"occupied"`
}

// GetHotel handles GET /v1/hotels/:id.  It returns the hotel together
// with its rooms and their occupancy so clients can pick a room to
// book.  The count is a snapshot; the booking write still enforces
// capacity atomically.
func (h *HotelHandler) GetHotel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotel"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	out := make([]roomWithOccupancy, 0, len(rooms))
	for _, rm := range rooms {
		occupied, err := h.Rooms.CountBookings(ctx, rm.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
		}
		out = append(out, roomWithOccupancy{Room: rm, Occupied: occupied})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hotel": hotel,
		"rooms": out,
	})
}
