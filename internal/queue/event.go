// Package queue defines message payloads exchanged over the message broker.
package queue

// Durable queue names for booking domain events.
const (
	BookingCreatedQueue = "booking.created"
	BookingUpdatedQueue = "booking.updated"
)

// BookingEvent is published when a booking is successfully created or
// moved to another room.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type BookingEvent struct {
	BookingID uint64 `json:"booking_id"`
	UserID    uint64 `json:"user_id"`
	RoomID    uint64 `json:"room_id"`
	RoomName  string `json:"room_name"`
	HotelID   uint64 `json:"hotel_id"`
	At        string `json:"at"` // RFC3339 UTC
}
