package model

import "time"

// Booking links one user to one hotel room.  A user holds at most one
// active booking; the service layer enforces this and the bookings
// table carries a unique index on user_id as a backstop.  Bookings are
// created and re-assigned here but never deleted by this subsystem.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who owns the booking.
//  RoomID    – room currently reserved.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp (changes when the room is reassigned).
type Booking struct {
	ID        uint64    `json:"id"`         // bookings.id
	UserID    uint64    `json:"user_id"`    // bookings.user_id
	RoomID    uint64    `json:"room_id"`    // bookings.room_id
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
	UpdatedAt time.Time `json:"updated_at"` // bookings.updated_at
}

// BookingWithRoom is a booking joined with its room, as returned to
// customers listing their reservation.
type BookingWithRoom struct {
	ID   uint64 `json:"id"`
	Room Room   `json:"room"`
}
